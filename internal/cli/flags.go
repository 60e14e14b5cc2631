package cli

import (
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomd2notion/pkg/config"
)

// parentTypeValue is a --parent-type flag that rejects unknown modes at
// parse time.
type parentTypeValue struct {
	value *config.ParentType
}

var _ pflag.Value = (*parentTypeValue)(nil)

func newParentTypeValue(p *config.ParentType) *parentTypeValue {
	return &parentTypeValue{value: p}
}

func (v *parentTypeValue) String() string {
	if v.value == nil {
		return ""
	}
	return string(*v.value)
}

func (v *parentTypeValue) Set(s string) error {
	p, err := config.ParseParentType(s)
	if err != nil {
		return err
	}
	*v.value = p
	return nil
}

func (v *parentTypeValue) Type() string {
	return "page|database"
}

// formatValue is a --format flag for block output.
type formatValue struct {
	value *config.OutputFormat
}

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(f *config.OutputFormat) *formatValue {
	return &formatValue{value: f}
}

func (v *formatValue) String() string {
	if v.value == nil {
		return ""
	}
	return string(*v.value)
}

func (v *formatValue) Set(s string) error {
	f, err := config.ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*v.value = f
	return nil
}

func (v *formatValue) Type() string {
	return "json|yaml|summary"
}

// optionalBool records a boolean flag only when it was given, so an unset
// flag leaves the configured value alone.
func optionalBool(flags *pflag.FlagSet, name string, dst **bool) {
	if !flags.Changed(name) {
		return
	}
	if v, err := flags.GetBool(name); err == nil {
		*dst = config.Bool(v)
	}
}
