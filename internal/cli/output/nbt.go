package output

import (
	"fmt"
	"io"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// NBTFormatter writes data as a big-endian (Java edition) NBT compound.
// data must be a struct or a map with string keys.
type NBTFormatter struct{}

// Format implements Formatter.
func (f *NBTFormatter) Format(w io.Writer, data any) error {
	b, err := nbt.MarshalEncoding(data, nbt.BigEndian)
	if err != nil {
		return fmt.Errorf("encode nbt: %w", err)
	}
	_, err = w.Write(b)
	return err
}
