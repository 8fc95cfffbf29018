package logger

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

type DefaultLogger struct {
	wr    io.Writer
	mu    sync.Mutex
	debug bool
	kinds map[string]string
}

// NewDefaultLogger creates logger writing both info and debug messages.
func NewDefaultLogger(wr io.Writer) Logger {
	return newDefaultLogger(wr, true)
}

// NewInfoLogger creates logger that drops debug messages.
func NewInfoLogger(wr io.Writer) Logger {
	return newDefaultLogger(wr, false)
}

func newDefaultLogger(wr io.Writer, debug bool) *DefaultLogger {
	s := &DefaultLogger{}
	s.wr = wr
	s.debug = debug
	// color package disables itself when stdout is not a terminal
	s.kinds = map[string]string{
		"INFO":  color.GreenString("INFO"),
		"DEBUG": color.CyanString("DEBUG"),
		"ERROR": color.RedString("ERROR"),
	}
	return s
}

func (s *DefaultLogger) Info(msg string, args ...interface{}) {
	s.log("INFO", msg, args...)
}

func (s *DefaultLogger) Debug(msg string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.log("DEBUG", msg, args...)
}

func (s *DefaultLogger) log(kind string, msg string, args ...interface{}) {
	write := func(format string, args ...interface{}) {
		s.mu.Lock()
		defer s.mu.Unlock()
		p := fmt.Sprintf(format, args...)
		_, err := s.wr.Write([]byte(p + "\n"))
		if err != nil {
			panic(err)
		}
	}
	kvs, err := formatArgs(args)
	if err != nil {
		write("%v Logger invalid args passed. Msg: %v Args: %v Err: %v", s.kinds["ERROR"], msg, args, err)
		return
	}
	if len(kvs) == 0 {
		write("%v %v", s.kinds[kind], msg)
		return
	}
	write("%v %v %v", s.kinds[kind], msg, kvs)
}

type kv struct {
	K string
	V string
}

func (s kv) String() string {
	return s.K + "=" + s.V
}

func formatArgs(args []interface{}) (res []kv, _ error) {
	if len(args)%2 != 0 {
		return nil, errors.New("len of args not even")
	}
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			return nil, errors.New("key arg passes in not a string")
		}
		v := fmt.Sprintf("%v", args[i+1])
		res = append(res, kv{k, v})
	}
	return
}

type nopLogger struct{}

// NewNopLogger returns logger that discards everything.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
