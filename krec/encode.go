package krec

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire-схема (protobuf wire format, номера полей фиксированы версией формата):
//
//	KRec            { header=1 frames=2(repeated) }
//	KRecHeader      { uuid=1 task=2 robot_platform=3 robot_serial=4
//	                  start_timestamp=5 end_timestamp=6 actuator_configs=7 }
//	KRecFrame       { video_timestamp=1 frame_number=2 inference_step=3
//	                  actuator_states=4 actuator_commands=5 imu_values=6 }
//	ActuatorState   { actuator_id=1 online=2 position=3 velocity=4 torque=5
//	                  temperature=6 voltage=7 current=8 }
//	ActuatorConfig  { actuator_id=1 kp=2 kd=3 ki=4 max_torque=5 name=6 }
//	ActuatorCommand { actuator_id=1 position=2 velocity=3 effort=4 }
//	ImuValues       { accel=1 gyro=2 mag=3 quaternion=4 }
//	Vec3            { x=1 y=2 z=3 }
//	ImuQuaternion   { x=1 y=2 z=3 w=4 }
//
// Опциональные поля (указатели в модели) при отсутствии не пишутся вовсе;
// присутствующие пишутся всегда, даже нулевые. Так сохраняется различие
// "не задано" / "задан ноль". Обязательные скаляры с нулевым значением
// опускаются: ноль и есть значение по умолчанию при чтении.

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendOptDouble(b []byte, num protowire.Number, v *float64) []byte {
	if v == nil {
		return b
	}
	return appendDouble(b, num, *v)
}

func appendOptFloat(b []byte, num protowire.Number, v *float32) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(*v))
}

func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func encodeVec3(v Vec3) []byte {
	var b []byte
	b = appendDouble(b, 1, v.X)
	b = appendDouble(b, 2, v.Y)
	b = appendDouble(b, 3, v.Z)
	return b
}

func encodeQuaternion(q ImuQuaternion) []byte {
	var b []byte
	b = appendDouble(b, 1, q.X)
	b = appendDouble(b, 2, q.Y)
	b = appendDouble(b, 3, q.Z)
	b = appendDouble(b, 4, q.W)
	return b
}

func encodeImuValues(v ImuValues) []byte {
	var b []byte
	if v.Accel != nil {
		b = appendMessage(b, 1, encodeVec3(*v.Accel))
	}
	if v.Gyro != nil {
		b = appendMessage(b, 2, encodeVec3(*v.Gyro))
	}
	if v.Mag != nil {
		b = appendMessage(b, 3, encodeVec3(*v.Mag))
	}
	if v.Quaternion != nil {
		b = appendMessage(b, 4, encodeQuaternion(*v.Quaternion))
	}
	return b
}

func encodeActuatorState(s ActuatorState) []byte {
	var b []byte
	b = appendUint(b, 1, uint64(s.ActuatorID))
	if s.Online {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	b = appendOptDouble(b, 3, s.Position)
	b = appendOptDouble(b, 4, s.Velocity)
	b = appendOptDouble(b, 5, s.Torque)
	b = appendOptDouble(b, 6, s.Temperature)
	b = appendOptFloat(b, 7, s.Voltage)
	b = appendOptFloat(b, 8, s.Current)
	return b
}

func encodeActuatorConfig(c ActuatorConfig) []byte {
	var b []byte
	b = appendUint(b, 1, uint64(c.ActuatorID))
	b = appendOptDouble(b, 2, c.Kp)
	b = appendOptDouble(b, 3, c.Kd)
	b = appendOptDouble(b, 4, c.Ki)
	b = appendOptDouble(b, 5, c.MaxTorque)
	if c.Name != nil {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, *c.Name)
	}
	return b
}

func encodeActuatorCommand(c ActuatorCommand) []byte {
	var b []byte
	b = appendUint(b, 1, uint64(c.ActuatorID))
	if c.Position != 0 {
		b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(c.Position))
	}
	if c.Velocity != 0 {
		b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(c.Velocity))
	}
	if c.Effort != 0 {
		b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(c.Effort))
	}
	return b
}

func encodeHeader(h KRecHeader) []byte {
	var b []byte
	b = appendString(b, 1, h.UUID)
	b = appendString(b, 2, h.Task)
	b = appendString(b, 3, h.RobotPlatform)
	b = appendString(b, 4, h.RobotSerial)
	if h.StartTimestamp != 0 {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(h.StartTimestamp))
	}
	if h.EndTimestamp != 0 {
		b = protowire.AppendTag(b, 6, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(h.EndTimestamp))
	}
	for _, cfg := range h.ActuatorConfigs {
		b = appendMessage(b, 7, encodeActuatorConfig(cfg))
	}
	return b
}

func encodeFrame(f KRecFrame) []byte {
	var b []byte
	b = appendUint(b, 1, f.VideoTimestamp)
	b = appendUint(b, 2, f.FrameNumber)
	b = appendUint(b, 3, f.InferenceStep)
	for _, s := range f.ActuatorStates {
		b = appendMessage(b, 4, encodeActuatorState(s))
	}
	if f.ActuatorCommands != nil {
		b = appendMessage(b, 5, encodeActuatorCommand(*f.ActuatorCommands))
	}
	if f.ImuValues != nil {
		b = appendMessage(b, 6, encodeImuValues(*f.ImuValues))
	}
	return b
}

// encodeKRec сериализует запись целиком: заголовок, затем кадры строго
// в порядке добавления, без какой-либо перекомпоновки.
func encodeKRec(r *KRec) []byte {
	var b []byte
	b = appendMessage(b, 1, encodeHeader(r.header))
	for _, f := range r.frames {
		b = appendMessage(b, 2, encodeFrame(f))
	}
	return b
}
