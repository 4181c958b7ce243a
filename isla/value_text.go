package isla

import (
	"sort"
	"strings"
)

// TextValue is a Value whose leaf payload is a UTF-8 string, as produced
// and consumed by the text codec.
type TextValue struct {
	kind    Kind
	leaf    string
	list    []TextValue
	entries []TextEntry
}

// TextEntry is a single key/value pair of a TextValue map.
type TextEntry struct {
	Key   string
	Value TextValue
}

// NewTextLeaf creates a leaf TextValue.
func NewTextLeaf(s string) TextValue {
	return TextValue{kind: KindLeaf, leaf: s}
}

// NewTextList creates a list TextValue.
func NewTextList(items ...TextValue) TextValue {
	return TextValue{kind: KindList, list: items}
}

// NewTextMap creates a map TextValue from entries. Duplicate keys: last
// write wins.
func NewTextMap(entries ...TextEntry) TextValue {
	v := TextValue{kind: KindMap}
	for _, e := range entries {
		v.SetKey(e.Key, e.Value)
	}
	return v
}

// TextNone returns the none sentinel.
func TextNone() TextValue {
	return TextValue{kind: KindNone}
}

// TextLeaves builds a list of string leaves.
func TextLeaves(ss ...string) TextValue {
	items := make([]TextValue, len(ss))
	for i, s := range ss {
		items[i] = NewTextLeaf(s)
	}
	return NewTextList(items...)
}

// TextLeafMap builds a map of string leaves.
func TextLeafMap(pairs map[string]string) TextValue {
	v := TextValue{kind: KindMap}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.SetKey(k, NewTextLeaf(pairs[k]))
	}
	return v
}

// Type returns the Value's Kind.
func (v TextValue) Type() Kind {
	return v.kind
}

// AsLeaf returns the leaf payload, or TypeMismatchError.
func (v TextValue) AsLeaf() (string, error) {
	if v.kind != KindLeaf {
		return "", &TypeMismatchError{Requested: KindLeaf, Actual: v.kind}
	}
	return v.leaf, nil
}

// AsList returns the list elements, or TypeMismatchError.
func (v TextValue) AsList() ([]TextValue, error) {
	if v.kind != KindList {
		return nil, &TypeMismatchError{Requested: KindList, Actual: v.kind}
	}
	return v.list, nil
}

// AsMap returns the map entries, or TypeMismatchError.
func (v TextValue) AsMap() ([]TextEntry, error) {
	if v.kind != KindMap {
		return nil, &TypeMismatchError{Requested: KindMap, Actual: v.kind}
	}
	return v.entries, nil
}

// AsLeafOrNull returns the leaf payload, or "" if not a leaf.
func (v TextValue) AsLeafOrNull() string {
	s, err := v.AsLeaf()
	if err != nil {
		return ""
	}
	return s
}

// AsListOrNull returns the list elements, or nil if not a list.
func (v TextValue) AsListOrNull() []TextValue {
	l, err := v.AsList()
	if err != nil {
		return nil
	}
	return l
}

// AsMapOrNull returns the map entries, or nil if not a map.
func (v TextValue) AsMapOrNull() []TextEntry {
	m, err := v.AsMap()
	if err != nil {
		return nil
	}
	return m
}

// Index returns the i-th list element.
func (v TextValue) Index(i int) (TextValue, error) {
	list, err := v.AsList()
	if err != nil {
		return TextValue{}, err
	}
	if i < 0 || i >= len(list) {
		return TextValue{}, &ListIndexOutOfRangeError{Index: i, Length: len(list)}
	}
	return list[i], nil
}

// IndexKey returns the map entry for key.
func (v TextValue) IndexKey(key string) (TextValue, error) {
	m, err := v.AsMap()
	if err != nil {
		return TextValue{}, err
	}
	for _, e := range m {
		if e.Key == key {
			return e.Value, nil
		}
	}
	return TextValue{}, &MapKeyNotFoundError{Key: key}
}

// Contains reports whether a map contains key. Returns an error if v is
// not a map.
func (v TextValue) Contains(key string) (bool, error) {
	m, err := v.AsMap()
	if err != nil {
		return false, err
	}
	for _, e := range m {
		if e.Key == key {
			return true, nil
		}
	}
	return false, nil
}

// Get returns the i-th list element, or fallback on any error.
func (v TextValue) Get(i int, fallback TextValue) TextValue {
	e, err := v.Index(i)
	if err != nil {
		return fallback
	}
	return e
}

// GetKey returns the map entry for key, or fallback on any error.
func (v TextValue) GetKey(key string, fallback TextValue) TextValue {
	e, err := v.IndexKey(key)
	if err != nil {
		return fallback
	}
	return e
}

// GetLeaf returns the i-th list element's leaf, or fallback.
func (v TextValue) GetLeaf(i int, fallback string) string {
	return ParseAt(v, i, TextValue.AsLeaf, fallback)
}

// GetLeafKey returns the map entry's leaf for key, or fallback.
func (v TextValue) GetLeafKey(key string, fallback string) string {
	return ParseAtKey(v, key, TextValue.AsLeaf, fallback)
}

// GetList returns the i-th list element's elements, or fallback.
func (v TextValue) GetList(i int, fallback []TextValue) []TextValue {
	return ParseAt(v, i, TextValue.AsList, fallback)
}

// GetListKey returns the map entry's elements for key, or fallback.
func (v TextValue) GetListKey(key string, fallback []TextValue) []TextValue {
	return ParseAtKey(v, key, TextValue.AsList, fallback)
}

// GetMap returns the i-th list element's entries, or fallback.
func (v TextValue) GetMap(i int, fallback []TextEntry) []TextEntry {
	return ParseAt(v, i, TextValue.AsMap, fallback)
}

// GetMapKey returns the map entry's entries for key, or fallback.
func (v TextValue) GetMapKey(key string, fallback []TextEntry) []TextEntry {
	return ParseAtKey(v, key, TextValue.AsMap, fallback)
}

// ParseAt applies fn to the i-th list element and returns its result, or
// fallback when the index is absent or fn errors.
func ParseAt[R any](v TextValue, i int, fn func(TextValue) (R, error), fallback R) R {
	e, err := v.Index(i)
	if err != nil {
		return fallback
	}
	r, err := fn(e)
	if err != nil {
		return fallback
	}
	return r
}

// ParseAtKey applies fn to the map entry for key and returns its result,
// or fallback when the key is absent or fn errors.
func ParseAtKey[R any](v TextValue, key string, fn func(TextValue) (R, error), fallback R) R {
	e, err := v.IndexKey(key)
	if err != nil {
		return fallback
	}
	r, err := fn(e)
	if err != nil {
		return fallback
	}
	return r
}

// ParseLeafAt applies fn to the i-th list element's leaf, or returns
// fallback when absent or not a leaf.
func ParseLeafAt[R any](v TextValue, i int, fn func(string) (R, error), fallback R) R {
	return ParseAt(v, i, subLeaf(fn), fallback)
}

// ParseLeafAtKey applies fn to the map entry's leaf for key, or returns
// fallback when absent or not a leaf.
func ParseLeafAtKey[R any](v TextValue, key string, fn func(string) (R, error), fallback R) R {
	return ParseAtKey(v, key, subLeaf(fn), fallback)
}

// ParseListAt applies fn to the i-th list element's elements, or returns
// fallback when absent or not a list.
func ParseListAt[R any](v TextValue, i int, fn func([]TextValue) (R, error), fallback R) R {
	return ParseAt(v, i, subList(fn), fallback)
}

// ParseListAtKey applies fn to the map entry's elements for key, or
// returns fallback when absent or not a list.
func ParseListAtKey[R any](v TextValue, key string, fn func([]TextValue) (R, error), fallback R) R {
	return ParseAtKey(v, key, subList(fn), fallback)
}

// ParseMapAt applies fn to the i-th list element's entries, or returns
// fallback when absent or not a map.
func ParseMapAt[R any](v TextValue, i int, fn func([]TextEntry) (R, error), fallback R) R {
	return ParseAt(v, i, subMap(fn), fallback)
}

// ParseMapAtKey applies fn to the map entry's entries for key, or returns
// fallback when absent or not a map.
func ParseMapAtKey[R any](v TextValue, key string, fn func([]TextEntry) (R, error), fallback R) R {
	return ParseAtKey(v, key, subMap(fn), fallback)
}

func subLeaf[R any](fn func(string) (R, error)) func(TextValue) (R, error) {
	return func(e TextValue) (R, error) {
		s, err := e.AsLeaf()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(s)
	}
}

func subList[R any](fn func([]TextValue) (R, error)) func(TextValue) (R, error) {
	return func(e TextValue) (R, error) {
		l, err := e.AsList()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(l)
	}
}

func subMap[R any](fn func([]TextEntry) (R, error)) func(TextValue) (R, error) {
	return func(e TextValue) (R, error) {
		m, err := e.AsMap()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(m)
	}
}

// Each visits every (index, value) pair of a list. Visiting a non-list
// yields nothing.
func (v TextValue) Each(fn func(i int, val TextValue)) {
	for i, e := range v.AsListOrNull() {
		fn(i, e)
	}
}

// EachKV visits every (key, value) pair of a map. Visiting a non-map
// yields nothing.
func (v TextValue) EachKV(fn func(key string, val TextValue)) {
	for _, e := range v.AsMapOrNull() {
		fn(e.Key, e.Value)
	}
}

// SetIndex replaces the i-th list element. Returns ListIndexOutOfRangeError
// if out of range, or TypeMismatchError if v is not a list.
func (v *TextValue) SetIndex(i int, val TextValue) error {
	if v.kind != KindList {
		return &TypeMismatchError{Requested: KindList, Actual: v.kind}
	}
	if i < 0 || i >= len(v.list) {
		return &ListIndexOutOfRangeError{Index: i, Length: len(v.list)}
	}
	v.list[i] = val
	return nil
}

// SetKey inserts or replaces a map entry. v becomes a map whatever its
// previous kind, so a zero-valued TextValue turns into a one-entry map.
func (v *TextValue) SetKey(key string, val TextValue) {
	v.kind = KindMap
	for i := range v.entries {
		if v.entries[i].Key == key {
			v.entries[i].Value = val
			return
		}
	}
	v.entries = append(v.entries, TextEntry{Key: key, Value: val})
}

// Append adds val to a list in place.
func (v *TextValue) Append(val TextValue) {
	v.kind = KindList
	v.list = append(v.list, val)
}

// Equal reports structural equality: equal Kind and equal contents.
func (v TextValue) Equal(other TextValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindLeaf:
		return v.leaf == other.leaf
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for _, e := range v.entries {
			ov, err := other.IndexKey(e.Key)
			if err != nil || !e.Value.Equal(ov) {
				return false
			}
		}
		return true
	default: // KindNone
		return true
	}
}

// String renders a debug form: leaves as-is, lists as "[a, b, c]", maps as
// "[k: v, k: v]", none as "none".
func (v TextValue) String() string {
	switch v.kind {
	case KindLeaf:
		return v.leaf
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = e.Key + ": " + e.Value.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "none"
	}
}
