package types

import (
	"strings"
	"sync"

	"go-aggcore/pkg/customerrors"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const BinaryMode = "binary"

type modeInfo struct {
	tag     language.Tag
	options []collate.Option
}

var modes = map[string]*modeInfo{
	"general_ci": {tag: language.Und, options: []collate.Option{collate.IgnoreCase}},
	"unicode_ci": {tag: language.Und, options: []collate.Option{collate.IgnoreCase, collate.IgnoreWidth}},
	"ai_ci":      {tag: language.Und, options: []collate.Option{collate.Loose}},
	"unicode_cs": {tag: language.Und},
}

var modeAliases = map[string]string{
	"":        BinaryMode,
	"bin":     BinaryMode,
	"default": BinaryMode,
	"ci":      "general_ci",
}

func init() {
	locales := map[string]string{
		"cs": "cs", "da": "da", "de": "de", "de_phonebook": "de-u-co-phonebk",
		"es": "es", "es_trad": "es-u-co-trad", "et": "et", "fr": "fr",
		"hr": "hr", "hu": "hu", "is": "is", "lt": "lt", "lv": "lv",
		"pl": "pl", "ro": "ro", "sk": "sk", "sl": "sl", "sv": "sv",
		"tr": "tr", "vi": "vi",
	}
	for name, tag := range locales {
		modes[name+"_ci"] = &modeInfo{
			tag:     language.MustParse(tag),
			options: []collate.Option{collate.IgnoreCase},
		}
		modes[name+"_cs"] = &modeInfo{tag: language.MustParse(tag)}
	}
}

// CompareMode is the collation strings are ordered and deduplicated under.
// A nil *CompareMode behaves as the binary mode. It is safe for concurrent
// use: collators, which are not, are pooled per mode.
type CompareMode struct {
	Name string

	binary bool
	pool   sync.Pool
}

type collator struct {
	c   *collate.Collator
	buf collate.Buffer
}

var Binary = &CompareMode{Name: BinaryMode, binary: true}

// NewCompareMode resolves a mode name such as "binary", "general_ci",
// "ai_ci" or "de_ci".
func NewCompareMode(name string) (*CompareMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := modeAliases[name]; ok {
		name = canonical
	}
	if name == BinaryMode {
		return Binary, nil
	}

	info, ok := modes[name]
	if !ok {
		return nil, errors.Wrapf(customerrors.ErrUnsupportedType, "unknown compare mode '%s'", name)
	}
	m := &CompareMode{Name: name}
	m.pool.New = func() interface{} {
		return &collator{c: collate.New(info.tag, info.options...)}
	}
	return m, nil
}

func (m *CompareMode) IsBinary() bool {
	return m == nil || m.binary
}

func (m *CompareMode) String() string {
	if m == nil {
		return BinaryMode
	}
	return m.Name
}

func (m *CompareMode) compareStrings(a, b string) int {
	if m.IsBinary() {
		return strings.Compare(a, b)
	}
	c := m.pool.Get().(*collator)
	defer m.pool.Put(c)
	return c.c.CompareString(a, b)
}

// appendKey appends the collation sort key of s. Collation keys compare
// equal exactly when the strings do, so they double as dedup keys.
func (m *CompareMode) appendKey(dst []byte, s string) []byte {
	if m.IsBinary() {
		return append(dst, s...)
	}
	c := m.pool.Get().(*collator)
	defer m.pool.Put(c)
	c.buf.Reset()
	return append(dst, c.c.KeyFromString(&c.buf, s)...)
}
