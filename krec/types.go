// Package krec реализует контейнер записи телеметрии робота: заголовок,
// упорядоченная последовательность кадров с состояниями/командами приводов и
// данными IMU, бинарная сериализация и объединение с видеофайлом.
package krec

// Vec3 — трёхмерный вектор (ускорение, угловая скорость, магнитометр).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// ImuQuaternion — ориентация в виде кватерниона.
// Кодек не нормализует значения: записывается то, что передано.
type ImuQuaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// IdentityQuaternion возвращает кватернион без вращения (0,0,0,1).
func IdentityQuaternion() ImuQuaternion {
	return ImuQuaternion{W: 1}
}

// ImuValues — показания IMU за один кадр. Все четыре поля независимо
// опциональны: отсутствие одного не означает отсутствия остальных.
type ImuValues struct {
	Accel      *Vec3
	Gyro       *Vec3
	Mag        *Vec3
	Quaternion *ImuQuaternion
}

// ActuatorState — наблюдаемое состояние одного привода в кадре.
// Опциональные поля — указатели, чтобы отличать "не измерено" от нуля.
type ActuatorState struct {
	ActuatorID  uint32
	Online      bool
	Position    *float64
	Velocity    *float64
	Torque      *float64
	Temperature *float64
	Voltage     *float32
	Current     *float32
}

// ActuatorConfig — статические параметры привода, объявляются один раз
// в заголовке записи. Уникальность ActuatorID — ответственность вызывающего.
type ActuatorConfig struct {
	ActuatorID uint32
	Kp         *float64
	Kd         *float64
	Ki         *float64
	MaxTorque  *float64
	Name       *string
}

// ActuatorCommand — командная уставка привода. В отличие от состояния,
// все три оси управления обязательны: команда всегда задаёт их явно,
// пусть и нулями.
type ActuatorCommand struct {
	ActuatorID uint32
	Position   float32
	Velocity   float32
	Effort     float32
}

// Float64 возвращает указатель на v. Удобство для опциональных полей.
func Float64(v float64) *float64 { return &v }

// Float32 возвращает указатель на v.
func Float32(v float32) *float32 { return &v }

// String возвращает указатель на v.
func String(v string) *string { return &v }
