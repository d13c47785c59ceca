// Package classfiletest builds minimal class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
)

// Builder assembles a class file with a chosen set of methods. Each method
// gets a Code attribute so readers must skip attribute bodies.
type Builder struct {
	className string
	pool      [][]byte
	poolSize  uint16
	utf8      map[string]uint16
	fields    []member
	methods   []member
	encoded   []byte
}

type member struct {
	access, name, desc uint16
}

// New starts a class with the given slash-separated name, e.g. "a/b/C"
func New(className string) *Builder {
	return &Builder{className: className, utf8: make(map[string]uint16), poolSize: 1}
}

// Method declares a method
func (b *Builder) Method(access uint16, name, descriptor string) *Builder {
	b.methods = append(b.methods, member{access: access, name: b.utf8Index(name), desc: b.utf8Index(descriptor)})
	return b
}

// Field declares a field
func (b *Builder) Field(access uint16, name, descriptor string) *Builder {
	b.fields = append(b.fields, member{access: access, name: b.utf8Index(name), desc: b.utf8Index(descriptor)})
	return b
}

// Long adds an eight-byte constant, which occupies two pool slots
func (b *Builder) Long(v int64) *Builder {
	body := make([]byte, 8)
	binary.BigEndian.PutUint64(body, uint64(v))
	return b.Constant(5, body...)
}

// Constant appends a raw constant pool entry. Long (5) and Double (6)
// entries take two slots.
func (b *Builder) Constant(tag byte, body ...byte) *Builder {
	b.pool = append(b.pool, append([]byte{tag}, body...))
	b.poolSize++
	if tag == 5 || tag == 6 {
		b.poolSize++
	}
	return b
}

func (b *Builder) utf8Index(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	entry := []byte{1, 0, 0}
	binary.BigEndian.PutUint16(entry[1:], uint16(len(s)))
	entry = append(entry, s...)
	b.pool = append(b.pool, entry)
	idx := b.poolSize
	b.poolSize++
	b.utf8[s] = idx
	return idx
}

func (b *Builder) classIndex(name string) uint16 {
	nameIdx := b.utf8Index(name)
	entry := []byte{7, 0, 0}
	binary.BigEndian.PutUint16(entry[1:], nameIdx)
	b.pool = append(b.pool, entry)
	idx := b.poolSize
	b.poolSize++
	return idx
}

// Bytes returns the encoded class file
func (b *Builder) Bytes() []byte {
	if b.encoded != nil {
		return b.encoded
	}
	thisClass := b.classIndex(b.className)
	superClass := b.classIndex("java/lang/Object")
	code := b.utf8Index("Code")

	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.BigEndian, v) }

	w(uint32(0xCAFEBABE))
	w(uint16(0))  // minor
	w(uint16(52)) // major, Java 8
	w(b.poolSize)
	for _, entry := range b.pool {
		buf.Write(entry)
	}
	w(uint16(0x0021)) // public super
	w(thisClass)
	w(superClass)
	w(uint16(0)) // interfaces

	w(uint16(len(b.fields)))
	for _, f := range b.fields {
		w(f.access)
		w(f.name)
		w(f.desc)
		w(uint16(0))
	}

	w(uint16(len(b.methods)))
	for _, m := range b.methods {
		w(m.access)
		w(m.name)
		w(m.desc)
		w(uint16(1))
		w(code)
		body := []byte{0, 1, 0, 1, 0, 0, 0, 1, 0xB1, 0, 0, 0, 0} // return
		w(uint32(len(body)))
		buf.Write(body)
	}

	w(uint16(0)) // class attributes
	b.encoded = buf.Bytes()
	return b.encoded
}

// WriteFile writes the class under <subjectsDir>/<subject>/classes and returns its path
func (b *Builder) WriteFile(subjectsDir, subject string) (string, error) {
	path := filepath.Join(subjectsDir, subject, "classes", filepath.FromSlash(b.className)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b.Bytes(), 0644)
}
