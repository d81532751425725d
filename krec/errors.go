package krec

import "errors"

// Виды ошибок ядра. Все операции возвращают ошибку, обёрнутую вокруг одного
// из этих значений, так что вызывающий различает их через errors.Is.
// Повторных попыток внутри нет: все операции идемпотентны при тех же входах,
// политика ретраев — на стороне вызывающего.
var (
	// ErrNotFound — путь не существует (load или входы combine).
	ErrNotFound = errors.New("not found")
	// ErrIo — отказ чтения/записи (права, диск, поток).
	ErrIo = errors.New("io failure")
	// ErrDecode — байты повреждены, усечены или несовместимы по версии.
	ErrDecode = errors.New("decode failure")
	// ErrEncode — агрегат в памяти нарушает обязательное поле;
	// отклоняется до записи, чтобы не породить битый файл.
	ErrEncode = errors.New("encode failure")
	// ErrCombine — видеоконтейнер не принимает вложенный поток данных.
	ErrCombine = errors.New("combine failure")
)
