package krec

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Декодер построчно разбирает wire-формат из encode.go. Неизвестные номера
// полей пропускаются целиком (совместимость вперёд: старый читатель
// игнорирует поля будущих версий). Известное поле с неожиданным wire-типом —
// признак порчи, а не эволюции схемы, и приводит к ошибке.

type wireField struct {
	num protowire.Number
	typ protowire.Type
	val []byte // остаток буфера, начинающийся со значения поля
}

// walkFields вызывает fn для каждого поля сообщения. fn возвращает число
// потреблённых байт значения; 0 означает "поле не моё" — тогда значение
// пропускается по wire-типу.
func walkFields(b []byte, fn func(f wireField) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(wireField{num: num, typ: typ, val: b})
		if err != nil {
			return err
		}
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return nil
}

func consumeDouble(f wireField) (float64, int, error) {
	if f.typ != protowire.Fixed64Type {
		return 0, 0, fmt.Errorf("field %d: unexpected wire type %d", f.num, f.typ)
	}
	v, n := protowire.ConsumeFixed64(f.val)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return math.Float64frombits(v), n, nil
}

func consumeFloat(f wireField) (float32, int, error) {
	if f.typ != protowire.Fixed32Type {
		return 0, 0, fmt.Errorf("field %d: unexpected wire type %d", f.num, f.typ)
	}
	v, n := protowire.ConsumeFixed32(f.val)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return math.Float32frombits(v), n, nil
}

func consumeVarint(f wireField) (uint64, int, error) {
	if f.typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("field %d: unexpected wire type %d", f.num, f.typ)
	}
	v, n := protowire.ConsumeVarint(f.val)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(f wireField) ([]byte, int, error) {
	if f.typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("field %d: unexpected wire type %d", f.num, f.typ)
	}
	v, n := protowire.ConsumeBytes(f.val)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func decodeVec3(b []byte) (Vec3, error) {
	var v Vec3
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1, 2, 3:
			x, n, err := consumeDouble(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 1:
				v.X = x
			case 2:
				v.Y = x
			case 3:
				v.Z = x
			}
			return n, nil
		}
		return 0, nil
	})
	return v, err
}

func decodeQuaternion(b []byte) (ImuQuaternion, error) {
	var q ImuQuaternion
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1, 2, 3, 4:
			x, n, err := consumeDouble(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 1:
				q.X = x
			case 2:
				q.Y = x
			case 3:
				q.Z = x
			case 4:
				q.W = x
			}
			return n, nil
		}
		return 0, nil
	})
	return q, err
}

func decodeImuValues(b []byte) (ImuValues, error) {
	var v ImuValues
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1, 2, 3:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			vec, err := decodeVec3(msg)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 1:
				v.Accel = &vec
			case 2:
				v.Gyro = &vec
			case 3:
				v.Mag = &vec
			}
			return n, nil
		case 4:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			q, err := decodeQuaternion(msg)
			if err != nil {
				return 0, err
			}
			v.Quaternion = &q
			return n, nil
		}
		return 0, nil
	})
	return v, err
}

func decodeActuatorState(b []byte) (ActuatorState, error) {
	var s ActuatorState
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1:
			v, n, err := consumeVarint(f)
			if err != nil {
				return 0, err
			}
			s.ActuatorID = uint32(v)
			return n, nil
		case 2:
			v, n, err := consumeVarint(f)
			if err != nil {
				return 0, err
			}
			s.Online = v != 0
			return n, nil
		case 3, 4, 5, 6:
			v, n, err := consumeDouble(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 3:
				s.Position = &v
			case 4:
				s.Velocity = &v
			case 5:
				s.Torque = &v
			case 6:
				s.Temperature = &v
			}
			return n, nil
		case 7, 8:
			v, n, err := consumeFloat(f)
			if err != nil {
				return 0, err
			}
			if f.num == 7 {
				s.Voltage = &v
			} else {
				s.Current = &v
			}
			return n, nil
		}
		return 0, nil
	})
	return s, err
}

func decodeActuatorConfig(b []byte) (ActuatorConfig, error) {
	var c ActuatorConfig
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1:
			v, n, err := consumeVarint(f)
			if err != nil {
				return 0, err
			}
			c.ActuatorID = uint32(v)
			return n, nil
		case 2, 3, 4, 5:
			v, n, err := consumeDouble(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 2:
				c.Kp = &v
			case 3:
				c.Kd = &v
			case 4:
				c.Ki = &v
			case 5:
				c.MaxTorque = &v
			}
			return n, nil
		case 6:
			v, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			name := string(v)
			c.Name = &name
			return n, nil
		}
		return 0, nil
	})
	return c, err
}

func decodeActuatorCommand(b []byte) (ActuatorCommand, error) {
	var c ActuatorCommand
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1:
			v, n, err := consumeVarint(f)
			if err != nil {
				return 0, err
			}
			c.ActuatorID = uint32(v)
			return n, nil
		case 2, 3, 4:
			v, n, err := consumeFloat(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 2:
				c.Position = v
			case 3:
				c.Velocity = v
			case 4:
				c.Effort = v
			}
			return n, nil
		}
		return 0, nil
	})
	return c, err
}

func decodeHeader(b []byte) (KRecHeader, error) {
	var h KRecHeader
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1, 2, 3, 4:
			v, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 1:
				h.UUID = string(v)
			case 2:
				h.Task = string(v)
			case 3:
				h.RobotPlatform = string(v)
			case 4:
				h.RobotSerial = string(v)
			}
			return n, nil
		case 5, 6:
			v, n, err := consumeVarint(f)
			if err != nil {
				return 0, err
			}
			if f.num == 5 {
				h.StartTimestamp = protowire.DecodeZigZag(v)
			} else {
				h.EndTimestamp = protowire.DecodeZigZag(v)
			}
			return n, nil
		case 7:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			cfg, err := decodeActuatorConfig(msg)
			if err != nil {
				return 0, err
			}
			h.ActuatorConfigs = append(h.ActuatorConfigs, cfg)
			return n, nil
		}
		return 0, nil
	})
	return h, err
}

func decodeFrame(b []byte) (KRecFrame, error) {
	var fr KRecFrame
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1, 2, 3:
			v, n, err := consumeVarint(f)
			if err != nil {
				return 0, err
			}
			switch f.num {
			case 1:
				fr.VideoTimestamp = v
			case 2:
				fr.FrameNumber = v
			case 3:
				fr.InferenceStep = v
			}
			return n, nil
		case 4:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			s, err := decodeActuatorState(msg)
			if err != nil {
				return 0, err
			}
			fr.ActuatorStates = append(fr.ActuatorStates, s)
			return n, nil
		case 5:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			cmd, err := decodeActuatorCommand(msg)
			if err != nil {
				return 0, err
			}
			fr.ActuatorCommands = &cmd
			return n, nil
		case 6:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			imu, err := decodeImuValues(msg)
			if err != nil {
				return 0, err
			}
			fr.ImuValues = &imu
			return n, nil
		}
		return 0, nil
	})
	return fr, err
}

// decodeKRec восстанавливает запись из тела файла (после magic и версии).
// Порядок кадров на диске равен порядку добавления в памяти.
func decodeKRec(b []byte) (*KRec, error) {
	r := &KRec{}
	err := walkFields(b, func(f wireField) (int, error) {
		switch f.num {
		case 1:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			h, err := decodeHeader(msg)
			if err != nil {
				return 0, err
			}
			r.header = h
			return n, nil
		case 2:
			msg, n, err := consumeBytes(f)
			if err != nil {
				return 0, err
			}
			fr, err := decodeFrame(msg)
			if err != nil {
				return 0, err
			}
			r.frames = append(r.frames, fr)
			return n, nil
		}
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
