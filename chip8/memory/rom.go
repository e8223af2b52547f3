package memory

import (
	"fmt"
	"hash/crc32"
	"path/filepath"
	"strings"
)

// ROM is a program image ready to be loaded at ProgramStart.
type ROM struct {
	data     []byte
	title    string
	checksum uint32
}

// NewROM validates and wraps program bytes. The title is only used for
// logs and snapshot filenames.
func NewROM(data []byte, title string) (*ROM, error) {
	if len(data) > MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, max is %d", ErrROMTooLarge, len(data), MaxROMSize)
	}

	rom := &ROM{
		data:     make([]byte, len(data)),
		title:    title,
		checksum: crc32.ChecksumIEEE(data),
	}
	copy(rom.data, data)

	return rom, nil
}

// TitleFromPath derives a ROM title from its file path, e.g.
// "roms/PONG.ch8" -> "PONG".
func TitleFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (r *ROM) Title() string    { return r.title }
func (r *ROM) Size() int        { return len(r.data) }
func (r *ROM) Checksum() uint32 { return r.checksum }
