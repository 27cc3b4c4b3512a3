package util

import (
	"sort"
	"strings"
)

// Container is anything that can give back its elements as a slice, in no
// particular order.
type Container[E any] interface {
	Elements() []E
}

// ISet is a generic set of comparable elements.
type ISet[E any] interface {
	Container[E]

	// Add adds the given element to the Set. If the element is already in the
	// set, no effect occurs.
	Add(element E)

	// AddAll adds all elements in s2 to the Set.
	AddAll(s2 ISet[E])

	// Has returns whether the given set has the specified element.
	Has(element E) bool

	// Len returns the number of elements in the set.
	Len() int

	// Copy returns a copy of the Set.
	Copy() ISet[E]

	// Equal returns whether a Set equals another value. It checks whether the
	// value implements ISet and if so, compares the elements and not their
	// ordering.
	Equal(o any) bool

	// StringOrdered is a string with the contents of the set, ordered
	// alphabetically. Two sets with the same elements produce the same
	// StringOrdered output regardless of insertion order; this is what makes
	// item-set identity checks in the automaton package order-independent.
	StringOrdered() string

	// Empty returns whether the set is empty.
	Empty() bool
}

// VSet is a set that additionally maps each element to a stored value.
type VSet[E any, V any] interface {
	ISet[E]

	// Set assigns the value of the element, adding it if not already present.
	Set(element E, data V)

	// Get retrieves the value of an element, or the zero value of V if the
	// element isn't present.
	Get(element E) V
}

// SVSet is a set that uses strings as its item type and some other type as
// its stored data type. It backs the LR(1) item sets of package automaton,
// where the string key is an item's canonical String() form and the value is
// the grammar.Item itself.
type SVSet[V any] map[string]V

func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	s := SVSet[V](map[string]V{})
	for _, m := range of {
		for k := range m {
			s.Set(k, m[k])
		}
	}
	return s
}

func (s SVSet[V]) Copy() ISet[string] {
	return NewSVSet(s)
}

func (s SVSet[V]) Add(idx string) {
	var zero V
	s[idx] = zero
}

func (s SVSet[V]) Set(idx string, val V) {
	s[idx] = val
}

func (s SVSet[V]) Get(idx string) V {
	return s[idx]
}

func (s SVSet[V]) Has(idx string) bool {
	_, ok := s[idx]
	return ok
}

func (s SVSet[V]) Len() int {
	return len(s)
}

func (s SVSet[V]) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s SVSet[V]) AddAll(s2 ISet[string]) {
	valuedSet, isValued := s2.(VSet[string, V])
	if isValued {
		for _, k := range valuedSet.Elements() {
			s.Set(k, valuedSet.Get(k))
		}
	} else {
		for _, k := range s2.Elements() {
			s.Add(k)
		}
	}
}

func (s SVSet[V]) Empty() bool {
	return s.Len() == 0
}

// StringOrdered shows the contents of the set with items alphabetized. Used
// as the canonical name of an LR(1) item set: two sets built in different
// discovery order but containing the same items produce the same
// StringOrdered output, which is how the canonical collection recognizes "is
// this set already in the collection" without an O(n^2) rescan.
func (s SVSet[V]) StringOrdered() string {
	convs := OrderedKeys(s)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

func (s SVSet[V]) String() string {
	return s.StringOrdered()
}

func (s SVSet[V]) Equal(o any) bool {
	other, ok := o.(ISet[string])
	if !ok {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// StringSet is a map[string]bool with methods added to fulfill ISet[string].
// It backs the terminal sets of grammar.FirstSet and the seen-sets package
// grammar uses when listing terminals and nonterminals.
type StringSet map[string]bool

func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func StringSetOf(sl []string) StringSet {
	s := StringSet{}
	for _, v := range sl {
		s.Add(v)
	}
	return s
}

func (s StringSet) Copy() ISet[string] {
	return NewStringSet(s)
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) AddAll(s2 ISet[string]) {
	for _, element := range s2.Elements() {
		s.Add(element)
	}
}

func (s StringSet) Empty() bool {
	return s.Len() == 0
}

func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}
	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

func (s StringSet) StringOrdered() string {
	convs := make([]string, 0, len(s))
	for k := range s {
		convs = append(convs, k)
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

func (s StringSet) String() string {
	return s.StringOrdered()
}

func (s StringSet) Equal(o any) bool {
	other, ok := o.(ISet[string])
	if !ok {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// OrderedKeys returns the keys of m sorted alphabetically. Iteration order
// over Go maps is randomized, so anywhere a deterministic ordering matters
// (table printing, error messages, the canonical form of an item set) goes
// through this instead of ranging over the map directly.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ArticleFor returns "a" or "an" depending on whether s starts with a vowel
// letter, for "expected a terminal" / "expected an identifier" style
// messages.
func ArticleFor(s string, capital bool) string {
	article := "a"
	if len(s) > 0 {
		switch s[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			article = "an"
		}
	}
	if capital {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// MakeTextList renders items as a natural-language list ("a", "a and b", or
// "a, b, and c").
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	cp := make([]string, len(items))
	copy(cp, items)
	cp[len(cp)-1] = "and " + cp[len(cp)-1]
	return strings.Join(cp, ", ")
}
