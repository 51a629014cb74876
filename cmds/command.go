package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
	// Params names the arguments consumed, for usage
	Params []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	fnType := fnValue.Type()
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %v", fnType))
	}

	var params []string
	for i := range fnType.NumIn() {
		params = append(params, paramName(fnType.In(i)))
	}

	return &Command{
		Func:   fnValue,
		Params: params,
	}
}

func paramName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "[" + strings.Trim(paramName(t.Elem()), "<>") + "]"
	}
	return "<" + t.Kind().String() + ">"
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
