package krec

import (
	"fmt"
	"strings"
)

// Текстовые дампы записи для инструментов инспекции. Формат сознательно
// простой и построчный, чтобы его было удобно grep-ать.

func optStr[T any](v *T) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", *v)
}

// String возвращает краткую сводку записи.
func (r *KRec) String() string {
	return fmt.Sprintf(
		"KRec(frames=%d, header=KRecHeader(uuid=%q, task=%q, robot_platform=%q, robot_serial=%q, configs=%d))",
		len(r.frames), r.header.UUID, r.header.Task,
		r.header.RobotPlatform, r.header.RobotSerial, len(r.header.ActuatorConfigs),
	)
}

// Display возвращает развёрнутое описание записи: заголовок, конфигурации
// приводов и сводку по кадрам.
func (r *KRec) Display() string {
	var b strings.Builder

	b.WriteString("KRec Recording\n")
	b.WriteString("==============\n\n")

	fmt.Fprintf(&b, "Task: %s\n", r.header.Task)
	fmt.Fprintf(&b, "Robot Platform: %s\n", r.header.RobotPlatform)
	fmt.Fprintf(&b, "Robot Serial: %s\n", r.header.RobotSerial)
	fmt.Fprintf(&b, "UUID: %s\n", r.header.UUID)
	fmt.Fprintf(&b, "Start Timestamp: %d\n", r.header.StartTimestamp)
	fmt.Fprintf(&b, "End Timestamp: %d\n", r.header.EndTimestamp)

	fmt.Fprintf(&b, "\nActuator Configs (%d)\n", len(r.header.ActuatorConfigs))
	b.WriteString("----------------\n")
	for _, cfg := range r.header.ActuatorConfigs {
		fmt.Fprintf(&b, "ID %d: ", cfg.ActuatorID)
		if cfg.Name != nil {
			fmt.Fprintf(&b, "%s ", *cfg.Name)
		}
		fmt.Fprintf(&b, "(kp=%s, kd=%s, ki=%s, max_torque=%s)\n",
			optStr(cfg.Kp), optStr(cfg.Kd), optStr(cfg.Ki), optStr(cfg.MaxTorque))
	}

	fmt.Fprintf(&b, "\nFrames (%d)\n", len(r.frames))
	b.WriteString("------------\n")
	if len(r.frames) > 0 {
		first := &r.frames[0]
		last := &r.frames[len(r.frames)-1]
		fmt.Fprintf(&b, "Time range: %d to %d\n", first.VideoTimestamp, last.VideoTimestamp)

		b.WriteString("\nFirst frame details:\n")
		fmt.Fprintf(&b, "  Frame number: %d\n", first.FrameNumber)
		fmt.Fprintf(&b, "  Inference step: %d\n", first.InferenceStep)
		fmt.Fprintf(&b, "  Actuator states: %d\n", len(first.ActuatorStates))
		if first.HasActuatorCommands() {
			b.WriteString("  Has actuator commands: yes\n")
		}
		if first.HasImuValues() {
			b.WriteString("  Has IMU values: yes\n")
		}
	}

	return b.String()
}

// DisplayFrame возвращает подробное описание одного кадра по индексу.
func (r *KRec) DisplayFrame(index int) (string, error) {
	if index < 0 || index >= len(r.frames) {
		return "", fmt.Errorf("frame %d out of range (0-%d)", index, len(r.frames)-1)
	}
	f := &r.frames[index]

	var b strings.Builder
	fmt.Fprintf(&b, "Frame %d\n", index)
	b.WriteString("=========\n\n")
	fmt.Fprintf(&b, "Video timestamp: %d\n", f.VideoTimestamp)
	fmt.Fprintf(&b, "Frame number: %d\n", f.FrameNumber)
	fmt.Fprintf(&b, "Inference step: %d\n", f.InferenceStep)

	fmt.Fprintf(&b, "\nActuator States (%d)\n", len(f.ActuatorStates))
	b.WriteString("---------------\n")
	for _, s := range f.ActuatorStates {
		fmt.Fprintf(&b, "ID %d: online=%v, pos=%s, vel=%s, torque=%s, temp=%s, volt=%s, curr=%s\n",
			s.ActuatorID, s.Online,
			optStr(s.Position), optStr(s.Velocity), optStr(s.Torque),
			optStr(s.Temperature), optStr(s.Voltage), optStr(s.Current))
	}

	if cmd := f.ActuatorCommands; cmd != nil {
		b.WriteString("\nActuator Commands\n")
		b.WriteString("----------------\n")
		fmt.Fprintf(&b, "ID %d: pos=%v, vel=%v, effort=%v\n",
			cmd.ActuatorID, cmd.Position, cmd.Velocity, cmd.Effort)
	}

	if imu := f.ImuValues; imu != nil {
		b.WriteString("\nIMU Values\n")
		b.WriteString("----------\n")
		if imu.Accel != nil {
			fmt.Fprintf(&b, "Accel: x=%v, y=%v, z=%v\n", imu.Accel.X, imu.Accel.Y, imu.Accel.Z)
		}
		if imu.Gyro != nil {
			fmt.Fprintf(&b, "Gyro: x=%v, y=%v, z=%v\n", imu.Gyro.X, imu.Gyro.Y, imu.Gyro.Z)
		}
		if imu.Mag != nil {
			fmt.Fprintf(&b, "Mag: x=%v, y=%v, z=%v\n", imu.Mag.X, imu.Mag.Y, imu.Mag.Z)
		}
		if q := imu.Quaternion; q != nil {
			fmt.Fprintf(&b, "Quaternion: x=%v, y=%v, z=%v, w=%v\n", q.X, q.Y, q.Z, q.W)
		}
	}

	return b.String(), nil
}
