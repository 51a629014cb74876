package sources

import (
	"bytes"
	"path"
	"strings"

	"github.com/reusee/undotape/tapescript"
	"github.com/reusee/undotape/tapesyntax"
	"github.com/reusee/undotape/tapevm"
)

type Source struct {
	Name string
	Data []byte
}

const ScriptExt = ".star"

func (s *Source) IsScript() bool {
	name := s.Name
	// drop query of urls
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return path.Ext(name) == ScriptExt
}

// Instructions compiles the source with the front end selected by its name.
// Options apply to scripts only.
func (s *Source) Instructions(options ...tapescript.Option) ([]tapevm.Instruction, error) {
	if s.IsScript() {
		return tapescript.Compile(s.Name, bytes.NewReader(s.Data), options...)
	}
	return tapesyntax.Parse(s.Name, bytes.NewReader(s.Data))
}
