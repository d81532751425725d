package krec

import (
	"github.com/google/uuid"
)

// KRecHeader — заголовок записи: идентификация, платформа, временные рамки
// и список конфигураций приводов. Создаётся один раз до начала захвата.
type KRecHeader struct {
	UUID            string
	Task            string
	RobotPlatform   string
	RobotSerial     string
	StartTimestamp  int64
	EndTimestamp    int64
	ActuatorConfigs []ActuatorConfig
}

// NewHeader создаёт заголовок с новым UUID. Остальные поля заполняет
// вызывающий перед началом захвата.
func NewHeader(task, robotPlatform, robotSerial string) KRecHeader {
	return KRecHeader{
		UUID:          uuid.NewString(),
		Task:          task,
		RobotPlatform: robotPlatform,
		RobotSerial:   robotSerial,
	}
}

// AddActuatorConfig добавляет конфигурацию привода в конец списка.
func (h *KRecHeader) AddActuatorConfig(cfg ActuatorConfig) {
	h.ActuatorConfigs = append(h.ActuatorConfigs, cfg)
}

// KRecFrame — один кадр захвата: метка видео, номер кадра, шаг инференса,
// состояния приводов (по одному на активный привод), опциональная команда
// и опциональные показания IMU.
type KRecFrame struct {
	VideoTimestamp uint64
	FrameNumber    uint64
	InferenceStep  uint64
	ActuatorStates []ActuatorState
	// В этой схеме на кадр приходится не более одного командного пакета.
	ActuatorCommands *ActuatorCommand
	ImuValues        *ImuValues
}

// AddActuatorState добавляет состояние привода в конец списка кадра.
func (f *KRecFrame) AddActuatorState(s ActuatorState) {
	f.ActuatorStates = append(f.ActuatorStates, s)
}

// HasActuatorCommands сообщает, задана ли команда в кадре.
func (f *KRecFrame) HasActuatorCommands() bool { return f.ActuatorCommands != nil }

// HasImuValues сообщает, заданы ли показания IMU в кадре.
func (f *KRecFrame) HasImuValues() bool { return f.ImuValues != nil }

// KRec — запись целиком: заголовок плюс кадры в порядке добавления.
// Порядок кадров — порядок захвата; монотонность video_timestamp и
// frame_number не проверяется, это ответственность вызывающего.
type KRec struct {
	header KRecHeader
	frames []KRecFrame
}

// New создаёт пустую запись из заголовка. Содержимое заголовка
// не валидируется.
func New(header KRecHeader) *KRec {
	return &KRec{header: header}
}

// AddFrame добавляет кадр в конец последовательности. Всегда успешен.
func (r *KRec) AddFrame(frame KRecFrame) {
	r.frames = append(r.frames, frame)
}

// Header возвращает заголовок записи.
func (r *KRec) Header() *KRecHeader { return &r.header }

// SetHeader целиком заменяет заголовок.
func (r *KRec) SetHeader(header KRecHeader) { r.header = header }

// Frames возвращает последовательность кадров. Порядок никогда
// не меняется внутри.
func (r *KRec) Frames() []KRecFrame { return r.frames }

// FrameCount возвращает количество кадров.
func (r *KRec) FrameCount() int { return len(r.frames) }
