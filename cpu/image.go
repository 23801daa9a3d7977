package cpu

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/ls8/machine"
)

// parseBinary parses a base 2 literal, with an optional sign, an optional
// 0b prefix, and '_' digit separators.
func parseBinary(text string) (value int, err error) {
	digits := text
	negative := false
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'b' || digits[1] == 'B') {
		digits = digits[2:]
	} else if strings.HasPrefix(digits, "_") {
		err = ErrParseNumber(text)
		return
	}

	// The 0b prefix enables strconv's '_' separator rules.
	u64, err := strconv.ParseUint("0b"+digits, 0, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			err = ErrLiteralRange
		} else {
			err = ErrParseNumber(text)
		}
		return
	}

	if u64 > 0xff || (negative && u64 != 0) {
		err = ErrLiteralRange
		return
	}

	value = int(u64)
	return
}

// ParseImage reads a program image. Each line holds at most one byte,
// written in base 2 (see parseBinary). Anything after a '#' is a comment, and lines without
// binary digits are skipped.
func ParseImage(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrLoadFormat{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	addr := 0

	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if !strings.ContainsAny(text, "01") {
			continue
		}

		var value int
		value, err = parseBinary(text)
		if err != nil {
			return
		}
		if addr >= machine.MEMORY_SIZE {
			err = ErrProgramSize
			return
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: lineno,
			Addr:   addr,
			Words:  []string{text},
			Codes:  []byte{byte(value)},
		})
		addr++
	}

	line = ""
	err = scanner.Err()
	if err != nil {
		return
	}

	log.Debugf("cpu: image of %d bytes", addr)

	return
}
