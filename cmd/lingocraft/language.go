package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/lingocraft/lingocraft/internal/translation"
)

// Language is a supported BCP 47 language code used as a flag value.
type Language string

func (l *Language) Set(val string) error {
	if !translation.IsSupported(val) {
		return fmt.Errorf("unsupported language: %s. Possible values are %v", val, translation.SupportedLanguages())
	}
	*l = Language(val)
	return nil
}

func (l Language) String() string {
	return string(l)
}

func (l *Language) Type() string {
	return "language"
}

var _ pflag.Value = (*Language)(nil)

// Languages is a repeatable Language flag.
type Languages []string

func (l *Languages) Set(val string) error {
	var language Language
	if err := language.Set(val); err != nil {
		return err
	}
	*l = append(*l, language.String())
	return nil
}

func (l Languages) String() string {
	return fmt.Sprintf("%v", []string(l))
}

func (l *Languages) Type() string {
	return "languages"
}

var _ pflag.Value = (*Languages)(nil)
