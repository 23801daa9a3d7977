package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const print8Image = `# print8.ls8
# Print the number 8

10000010 # LDI R0,8
00000000
00001000
01000111 # PRN R0
00000000
00000001 # HLT
`

func TestParseImage(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseImage(strings.NewReader(print8Image))
	assert.NoError(err)
	assert.Equal(print8, prog.Binary())

	assert.Len(prog.Opcodes, 6)
	assert.Equal(4, prog.Opcodes[0].LineNo)
	assert.Equal([]string{"10000010"}, prog.Opcodes[0].Words)
	assert.Equal(9, prog.Opcodes[5].LineNo)
	assert.Equal(5, prog.Opcodes[5].Addr)
}

func TestParseImage_Skip(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		"",
		"   ",
		"# only a comment 0101",
		"no digits here",
		"\t00000001\t# tabs",
	}, "\n")

	prog, err := ParseImage(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal([]byte{0b00000001}, prog.Binary())
	assert.Equal(5, prog.Opcodes[0].LineNo)
}

func TestParseImage_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"range", "00000001\n100000000\n", 2, ErrLiteralRange},
		{"huge", strings.Repeat("1", 80), 1, ErrLiteralRange},
		{"digits", "1010a101", 1, ErrParseNumber("1010a101")},
		{"spaces", "1010 0101", 1, ErrParseNumber("1010 0101")},
		{"size", strings.Repeat("00000001\n", 257), 257, ErrProgramSize},
	}

	for _, entry := range table {
		_, err := ParseImage(strings.NewReader(entry.text))
		assert.ErrorIs(err, entry.err, entry.name)

		var loadErr *ErrLoadFormat
		if assert.True(errors.As(err, &loadErr), entry.name) {
			assert.Equal(entry.lineno, loadErr.LineNo, entry.name)
		}
	}
}

func TestParseBinary(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value int
		err   error
	}){
		{"00000001", 1, nil},
		{"11111111", 0xff, nil},
		{"0b00000001", 1, nil},
		{"0B1", 1, nil},
		{"0000_0001", 1, nil},
		{"0b_1000_0010", 0b10000010, nil},
		{"+1", 1, nil},
		{"-0", 0, nil},
		{"-1", 0, ErrLiteralRange},
		{"100000000", 0, ErrLiteralRange},
		{"_1", 0, ErrParseNumber("_1")},
		{"1__0", 0, ErrParseNumber("1__0")},
		{"10_", 0, ErrParseNumber("10_")},
		{"0b", 0, ErrParseNumber("0b")},
		{"++1", 0, ErrParseNumber("++1")},
		{"12", 0, ErrParseNumber("12")},
	}

	for _, entry := range table {
		value, err := parseBinary(entry.text)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.text)
			continue
		}
		assert.NoError(err, entry.text)
		assert.Equal(entry.value, value, entry.text)
	}
}

func TestParseImage_Prefixed(t *testing.T) {
	assert := assert.New(t)

	text := "0b1000_0010 # LDI R0,8\n+0\n0B00001000\n01000111\n0\n1\n"

	prog, err := ParseImage(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal(print8, prog.Binary())
}

func TestParseImage_Full(t *testing.T) {
	assert := assert.New(t)

	prog, err := ParseImage(strings.NewReader(strings.Repeat("00000001\n", 256)))
	assert.NoError(err)
	assert.Equal(256, prog.Size())
}
