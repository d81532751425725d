package krec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
)

// Формат файла .krec: 4 байта magic "KREC", 2 байта версии (little-endian),
// тело в wire-формате из encode.go, затем 4 байта CRC32C тела. Magic и
// версия отличают чужой или несовместимый файл до разбора тела; контрольная
// сумма гарантирует, что любое усечение или порча будут отвергнуты, а не
// прочитаны как укороченная запись.
var (
	fileMagic = []byte("KREC")
	crcTable  = crc32.MakeTable(crc32.Castagnoli)
)

const (
	fileVersion    = uint16(1)
	fileHeaderSize = 6 // magic + version
	fileMinSize    = fileHeaderSize + crc32.Size
)

// validate отбраковывает агрегат, нарушающий обязательные поля, до записи.
// При корректном использовании модели сюда не попадают, но кодек обязан
// отклонить битое состояние, а не выдать битые байты.
func (r *KRec) validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil recording", ErrEncode)
	}
	if r.header.UUID == "" {
		return fmt.Errorf("%w: header uuid is empty", ErrEncode)
	}
	return nil
}

// Save сериализует запись в path атомарно: тело пишется во временный файл
// в той же директории и переименовывается. Читатель никогда не увидит
// частичный файл; при ошибке временный файл удаляется.
func (r *KRec) Save(path string) error {
	if err := r.validate(); err != nil {
		return err
	}

	body := encodeKRec(r)
	buf := make([]byte, 0, fileMinSize+len(body))
	buf = append(buf, fileMagic...)
	buf = binary.LittleEndian.AppendUint16(buf, fileVersion)
	buf = append(buf, body...)
	buf = binary.LittleEndian.AppendUint32(buf, crc32.Checksum(body, crcTable))

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".krec-*")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", ErrIo, dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %v", ErrIo, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: sync %s: %v", ErrIo, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", ErrIo, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename to %s: %v", ErrIo, path, err)
	}
	return nil
}

// Load читает файл и восстанавливает эквивалентную запись: каждый скаляр,
// каждый флаг присутствия и точный порядок кадров переживают цикл
// Save/Load без потерь.
func Load(path string) (*KRec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrIo, path, err)
	}

	if len(data) < fileMinSize {
		return nil, fmt.Errorf("%w: %s: file too short (%d bytes)", ErrDecode, path, len(data))
	}
	if !bytes.Equal(data[:4], fileMagic) {
		return nil, fmt.Errorf("%w: %s: bad magic", ErrDecode, path)
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != fileVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", ErrDecode, path, version)
	}

	body := data[fileHeaderSize : len(data)-crc32.Size]
	want := binary.LittleEndian.Uint32(data[len(data)-crc32.Size:])
	if got := crc32.Checksum(body, crcTable); got != want {
		return nil, fmt.Errorf("%w: %s: checksum mismatch (file truncated or corrupt)", ErrDecode, path)
	}

	r, err := decodeKRec(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return r, nil
}
