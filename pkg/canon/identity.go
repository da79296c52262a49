package canon

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/oddkernel/pkg/errors"
)

// Identity selects how canonical identities are rendered.
type Identity int

const (
	// StringIdentity renders identities as nested label strings.
	StringIdentity Identity = iota
	// HashedIdentity renders identities as 16-digit hex xxhash64 digests.
	HashedIdentity
)

var identityNames = map[Identity]string{
	StringIdentity: "string",
	HashedIdentity: "hashed",
}

// ParseIdentity converts "string" or "hashed" to an [Identity].
func ParseIdentity(s string) (Identity, error) {
	for id, name := range identityNames {
		if name == s {
			return id, nil
		}
	}
	return 0, errors.ValidateChoice(errors.ErrCodeInvalidIdentity, "identity", s, "string", "hashed")
}

func (id Identity) String() string {
	if name, ok := identityNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Identity(%d)", int(id))
}

func (id Identity) valid() bool {
	_, ok := identityNames[id]
	return ok
}

func (id Identity) leaf(label string) string {
	label = escape(label)
	if id == HashedIdentity {
		return fmt.Sprintf("%016x", xxhash.Sum64String(label))
	}
	return label
}

func (id Identity) node(label string, children []string) string {
	label = escape(label)
	if id == HashedIdentity {
		d := xxhash.New()
		d.WriteString(label)
		d.WriteString("(")
		for i, c := range children {
			if i > 0 {
				d.WriteString(",")
			}
			d.WriteString(c)
		}
		d.WriteString(")")
		return fmt.Sprintf("%016x", d.Sum64())
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteByte('(')
	b.WriteString(strings.Join(children, ","))
	b.WriteByte(')')
	return b.String()
}

// delimiters are the characters that structure an identity.
const delimiters = `\(),`

// escape backslash-escapes delimiters in label. Labels without delimiters
// are returned unchanged.
func escape(label string) string {
	if !strings.ContainsAny(label, delimiters) {
		return label
	}
	var b strings.Builder
	b.Grow(len(label) + 4)
	for _, r := range label {
		if strings.ContainsRune(delimiters, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
