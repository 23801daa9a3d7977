// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/machine"
)

// equateDepth limits nested equate resolution.
const equateDepth = 16

// Assembler is a two pass assembler for LS-8 mnemonics.
//
//	; comment (or # comment)
//	.equ COUNT 3
//	LOOP: LDI R0, $(COUNT * 2)
//	      PRN R0
//	      .db 0b00000001
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines an equate before parsing.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap maps register names to register indexes.
var regMap = map[string]int{
	"R0": 0, "R1": 1, "R2": 2, "R3": 3,
	"R4": 4, "R5": 5, "R6": 6, "R7": 7,
	"SP": machine.REG_SP,
}

// sourceLine is a line of source, after labels have been removed.
type sourceLine struct {
	lineno int
	text   string
	addr   int
	words  []string
}

// splitWords splits a line into words, on spaces and commas. The text of a
// $(...) expression is kept as a single word.
func splitWords(line string) (words []string) {
	var word strings.Builder
	depth := 0

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, ch := range line {
		switch {
		case ch == '(' && depth == 0 && strings.HasSuffix(word.String(), "$"):
			depth = 1
			word.WriteRune(ch)
		case ch == '(' && depth > 0:
			depth++
			word.WriteRune(ch)
		case ch == ')' && depth > 0:
			depth--
			word.WriteRune(ch)
		case depth == 0 && (ch == ' ' || ch == '\t' || ch == ','):
			flush()
		default:
			word.WriteRune(ch)
		}
	}
	flush()

	return
}

// stripComment removes a trailing ';' or '#' comment.
func stripComment(text string) string {
	if n := strings.IndexAny(text, ";#"); n >= 0 {
		text = text[:n]
	}
	return strings.TrimSpace(text)
}

// symbols returns every equate and label, with its textual value.
func (asm *Assembler) symbols() iter.Seq2[string, string] {
	labels := func(yield func(string, string) bool) {
		for name, addr := range asm.Label {
			if !yield(name, strconv.Itoa(addr)) {
				return
			}
		}
	}
	return internal.IterSeq2Concat(maps.All(asm.Equate), labels)
}

// parenEval does compile-time $(...) evaluations. Only the symbols named
// in the expression are resolved.
func (asm *Assembler) parenEval(expr string, depth int) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.symbols() {
		if !strings.Contains(expr, key) {
			continue
		}
		var symval int
		symval, err = asm.valueOf(key, depth)
		if err != nil {
			// Ignore non-integer symbols. They may be registers.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(symval)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// valueOf returns the integer value of a word: a number, a label, an
// equate, or a $(...) expression.
func (asm *Assembler) valueOf(word string, depth int) (value int, err error) {
	if depth <= 0 {
		err = ErrEquateSyntax
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		value, err = asm.parenEval(word[2:len(word)-1], depth-1)
		return
	}

	if addr, ok := asm.Label[word]; ok {
		value = addr
		return
	}

	if equ, ok := asm.Equate[word]; ok {
		value, err = asm.valueOf(equ, depth-1)
		return
	}

	v64, perr := strconv.ParseInt(word, 0, 64)
	if perr != nil {
		if first, _ := utf8.DecodeRuneInString(word); first == '_' || unicode.IsLetter(first) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
		return
	}

	value = int(v64)
	return
}

// literalOf returns a byte-sized literal value.
func (asm *Assembler) literalOf(word string) (value byte, err error) {
	v, err := asm.valueOf(word, equateDepth)
	if err != nil {
		return
	}
	if v < 0 || v > 0xff {
		err = ErrLiteralRange
		return
	}

	value = byte(v)
	return
}

// registerOf returns the register index named by a word.
func (asm *Assembler) registerOf(word string) (reg byte, err error) {
	for range equateDepth {
		if index, ok := regMap[strings.ToUpper(word)]; ok {
			reg = byte(index)
			return
		}
		equ, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equ
	}

	err = ErrRegisterInvalid
	return
}

// scan performs the first pass: strips comments and labels, records
// equates and labels, and assigns addresses.
func (asm *Assembler) scan(input io.Reader) (lines []sourceLine, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	addr := 0

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		if asm.Verbose {
			log.Debugf("asm: %v: %v", lineno, line)
		}

		words := splitWords(stripComment(line))

		// LABEL: [LABEL: ...] [instruction]
		for len(words) > 0 && strings.HasSuffix(words[0], ":") {
			label := strings.TrimSuffix(words[0], ":")
			if _, dup := asm.Label[label]; dup || len(label) == 0 {
				err = ErrLabelDuplicate
				return
			}
			asm.Label[label] = addr
			words = words[1:]
		}

		if len(words) == 0 {
			continue
		}

		var size int
		switch strings.ToLower(words[0]) {
		case ".equ":
			if len(words) != 3 {
				err = ErrEquateSyntax
				return
			}
			if _, dup := asm.Equate[words[1]]; dup {
				if _, sys := asm.predefine[words[1]]; !sys {
					err = ErrEquateDuplicate
					return
				}
			}
			asm.Equate[words[1]] = words[2]
			continue
		case ".db":
			size = len(words) - 1
		default:
			code, ok := mnemonicMap[strings.ToUpper(words[0])]
			if !ok {
				err = ErrOpcodeInvalid
				return
			}
			size = 1 + code.Operands()
		}

		if addr+size > machine.MEMORY_SIZE {
			err = ErrProgramSize
			return
		}

		lines = append(lines, sourceLine{
			lineno: lineno,
			text:   line,
			addr:   addr,
			words:  words,
		})
		addr += size
	}

	line = ""
	err = scanner.Err()
	return
}

// encode performs the second pass on a single line.
func (asm *Assembler) encode(src sourceLine) (codes []byte, err error) {
	words := src.words

	if strings.ToLower(words[0]) == ".db" {
		for _, word := range words[1:] {
			var value byte
			value, err = asm.literalOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	code := mnemonicMap[strings.ToUpper(words[0])]
	args := words[1:]
	if len(args) != code.Operands() {
		err = ErrOperandCount
		return
	}

	codes = append(codes, byte(code))
	for n, word := range args {
		var value byte
		if code == OP_LDI && n == 1 {
			value, err = asm.literalOf(word)
		} else {
			value, err = asm.registerOf(word)
		}
		if err != nil {
			return
		}
		codes = append(codes, value)
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Opcode = asm.Opcode[:0]
	asm.Label = map[string]int{}
	asm.Equate = maps.Clone(asm.predefine)
	if asm.Equate == nil {
		asm.Equate = map[string]string{}
	}

	lines, err := asm.scan(input)
	if err != nil {
		return
	}

	for _, src := range lines {
		var codes []byte
		codes, err = asm.encode(src)
		if err != nil {
			err = &ErrSyntax{LineNo: src.lineno, Line: src.text, Err: err}
			return
		}

		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo: src.lineno,
			Addr:   src.addr,
			Words:  src.words,
			Codes:  codes,
		})
	}

	if asm.Verbose {
		for _, op := range asm.Opcode {
			log.Debugf("asm: %02x: % x %v", op.Addr, op.Codes, fmt.Sprint(op.Words))
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
