package classfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf16"
)

// Magic is the first four bytes of every class file
const Magic = 0xCAFEBABE

// Constant pool tags
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// ErrBadMagic is returned when the input does not start with the class file magic
var ErrBadMagic = errors.New("not a class file")

// Method is one entry of a class's method table
type Method struct {
	Access     uint16
	Name       string
	Descriptor string
}

// Signature returns name followed by descriptor, e.g. "m()I"
func (m Method) Signature() string {
	return m.Name + m.Descriptor
}

// Class holds the parts of a class file needed to locate method declarations
type Class struct {
	MajorVersion uint16
	MinorVersion uint16
	Access       uint16
	Methods      []Method
}

// FindMethod returns the first declared method whose name+descriptor equals signature
func (c *Class) FindMethod(signature string) (Method, bool) {
	for _, m := range c.Methods {
		if m.Signature() == signature {
			return m, true
		}
	}
	return Method{}, false
}

// Parse reads a class file far enough to enumerate its declared methods.
// Constant pool entries other than Utf8 are skipped, as are interfaces,
// fields and every attribute body.
func Parse(r io.Reader) (*Class, error) {
	p := &parser{r: bufio.NewReader(r)}

	magic := p.u4()
	if p.err != nil {
		return nil, fmt.Errorf("read magic: %w", p.err)
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	class := &Class{}
	class.MinorVersion = p.u2()
	class.MajorVersion = p.u2()

	utf8, err := p.constantPool()
	if err != nil {
		return nil, fmt.Errorf("constant pool: %w", err)
	}

	class.Access = p.u2()
	p.u2() // this_class
	p.u2() // super_class
	p.skip(int64(p.u2()) * 2)

	// fields share the member layout with methods
	fieldCount := p.u2()
	for i := 0; i < int(fieldCount) && p.err == nil; i++ {
		p.skip(6)
		p.attributes()
	}

	methodCount := p.u2()
	for i := 0; i < int(methodCount) && p.err == nil; i++ {
		access := p.u2()
		nameIdx := p.u2()
		descIdx := p.u2()
		p.attributes()
		if p.err != nil {
			break
		}

		name, ok := utf8[nameIdx]
		if !ok {
			return nil, fmt.Errorf("method %d: name index %d is not a Utf8 constant", i, nameIdx)
		}
		desc, ok := utf8[descIdx]
		if !ok {
			return nil, fmt.Errorf("method %d: descriptor index %d is not a Utf8 constant", i, descIdx)
		}
		class.Methods = append(class.Methods, Method{Access: access, Name: name, Descriptor: desc})
	}

	if p.err != nil {
		return nil, fmt.Errorf("read class body: %w", p.err)
	}
	return class, nil
}

// parser keeps the first read error so sequential reads stay terse
type parser struct {
	r   *bufio.Reader
	buf [8]byte
	err error
}

func (p *parser) read(n int) []byte {
	if p.err != nil {
		return nil
	}
	b := p.buf[:n]
	if _, err := io.ReadFull(p.r, b); err != nil {
		p.err = err
		return nil
	}
	return b
}

func (p *parser) u1() uint8 {
	b := p.read(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (p *parser) u2() uint16 {
	b := p.read(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (p *parser) u4() uint32 {
	b := p.read(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (p *parser) skip(n int64) {
	if p.err != nil || n == 0 {
		return
	}
	if _, err := io.CopyN(io.Discard, p.r, n); err != nil {
		p.err = err
	}
}

func (p *parser) attributes() {
	count := p.u2()
	for i := 0; i < int(count) && p.err == nil; i++ {
		p.u2() // attribute_name_index
		p.skip(int64(p.u4()))
	}
}

// constantPool walks the pool and returns the Utf8 entries by index
func (p *parser) constantPool() (map[uint16]string, error) {
	count := p.u2()
	utf8 := make(map[uint16]string)

	for i := uint16(1); i < count && p.err == nil; i++ {
		tag := p.u1()
		switch tag {
		case tagUtf8:
			length := p.u2()
			if p.err != nil {
				break
			}
			raw := make([]byte, length)
			if _, err := io.ReadFull(p.r, raw); err != nil {
				p.err = err
				break
			}
			utf8[i] = decodeModifiedUTF8(raw)
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			p.skip(2)
		case tagMethodHandle:
			p.skip(3)
		case tagInteger, tagFloat, tagFieldref, tagMethodref, tagInterfaceMethodref,
			tagNameAndType, tagDynamic, tagInvokeDynamic:
			p.skip(4)
		case tagLong, tagDouble:
			// eight-byte constants take two pool slots
			p.skip(8)
			i++
		default:
			if p.err == nil {
				return nil, fmt.Errorf("unknown constant tag %d at index %d", tag, i)
			}
		}
	}

	if p.err != nil {
		return nil, p.err
	}
	return utf8, nil
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8: NUL is encoded as
// two bytes and supplementary characters as surrogate pairs.
func decodeModifiedUTF8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
