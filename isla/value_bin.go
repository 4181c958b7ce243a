package isla

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// BinValue is a Value whose leaf payload is an arbitrary byte sequence, as
// produced and consumed by the binary codec. Binary has no none variant.
type BinValue struct {
	kind    Kind
	leaf    []byte
	list    []BinValue
	entries []BinEntry
}

// BinEntry is a single key/value pair of a BinValue map. Keys are bytes,
// matching the binary format's leaf type.
type BinEntry struct {
	Key   []byte
	Value BinValue
}

// NewBinLeaf creates a leaf BinValue.
func NewBinLeaf(b []byte) BinValue {
	return BinValue{kind: KindLeaf, leaf: b}
}

// NewBinList creates a list BinValue.
func NewBinList(items ...BinValue) BinValue {
	return BinValue{kind: KindList, list: items}
}

// NewBinMap creates a map BinValue from entries. Duplicate keys: last
// write wins.
func NewBinMap(entries ...BinEntry) BinValue {
	v := BinValue{kind: KindMap}
	for _, e := range entries {
		v.SetKey(e.Key, e.Value)
	}
	return v
}

// BinLeaves builds a list of byte leaves.
func BinLeaves(bs ...[]byte) BinValue {
	items := make([]BinValue, len(bs))
	for i, b := range bs {
		items[i] = NewBinLeaf(b)
	}
	return NewBinList(items...)
}

// BinLeafMap builds a map of byte leaves, keyed by string for convenience.
func BinLeafMap(pairs map[string][]byte) BinValue {
	v := BinValue{kind: KindMap}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.SetKey([]byte(k), NewBinLeaf(pairs[k]))
	}
	return v
}

// Type returns the Value's Kind.
func (v BinValue) Type() Kind {
	return v.kind
}

// AsLeaf returns the leaf payload, or TypeMismatchError.
func (v BinValue) AsLeaf() ([]byte, error) {
	if v.kind != KindLeaf {
		return nil, &TypeMismatchError{Requested: KindLeaf, Actual: v.kind}
	}
	return v.leaf, nil
}

// AsList returns the list elements, or TypeMismatchError.
func (v BinValue) AsList() ([]BinValue, error) {
	if v.kind != KindList {
		return nil, &TypeMismatchError{Requested: KindList, Actual: v.kind}
	}
	return v.list, nil
}

// AsMap returns the map entries, or TypeMismatchError.
func (v BinValue) AsMap() ([]BinEntry, error) {
	if v.kind != KindMap {
		return nil, &TypeMismatchError{Requested: KindMap, Actual: v.kind}
	}
	return v.entries, nil
}

// AsLeafOrNull returns the leaf payload, or nil if not a leaf.
func (v BinValue) AsLeafOrNull() []byte {
	b, err := v.AsLeaf()
	if err != nil {
		return nil
	}
	return b
}

// AsListOrNull returns the list elements, or nil if not a list.
func (v BinValue) AsListOrNull() []BinValue {
	l, err := v.AsList()
	if err != nil {
		return nil
	}
	return l
}

// AsMapOrNull returns the map entries, or nil if not a map.
func (v BinValue) AsMapOrNull() []BinEntry {
	m, err := v.AsMap()
	if err != nil {
		return nil
	}
	return m
}

// Index returns the i-th list element.
func (v BinValue) Index(i int) (BinValue, error) {
	list, err := v.AsList()
	if err != nil {
		return BinValue{}, err
	}
	if i < 0 || i >= len(list) {
		return BinValue{}, &ListIndexOutOfRangeError{Index: i, Length: len(list)}
	}
	return list[i], nil
}

// IndexKey returns the map entry for key.
func (v BinValue) IndexKey(key []byte) (BinValue, error) {
	m, err := v.AsMap()
	if err != nil {
		return BinValue{}, err
	}
	for _, e := range m {
		if bytes.Equal(e.Key, key) {
			return e.Value, nil
		}
	}
	return BinValue{}, &MapKeyNotFoundError{Key: string(key)}
}

// Contains reports whether a map contains key. Returns an error if v is
// not a map.
func (v BinValue) Contains(key []byte) (bool, error) {
	m, err := v.AsMap()
	if err != nil {
		return false, err
	}
	for _, e := range m {
		if bytes.Equal(e.Key, key) {
			return true, nil
		}
	}
	return false, nil
}

// Get returns the i-th list element, or fallback on any error.
func (v BinValue) Get(i int, fallback BinValue) BinValue {
	e, err := v.Index(i)
	if err != nil {
		return fallback
	}
	return e
}

// GetKey returns the map entry for key, or fallback on any error.
func (v BinValue) GetKey(key []byte, fallback BinValue) BinValue {
	e, err := v.IndexKey(key)
	if err != nil {
		return fallback
	}
	return e
}

// GetLeaf returns the i-th list element's leaf, or fallback.
func (v BinValue) GetLeaf(i int, fallback []byte) []byte {
	return ParseBinAt(v, i, BinValue.AsLeaf, fallback)
}

// GetLeafKey returns the map entry's leaf for key, or fallback.
func (v BinValue) GetLeafKey(key []byte, fallback []byte) []byte {
	return ParseBinAtKey(v, key, BinValue.AsLeaf, fallback)
}

// GetList returns the i-th list element's elements, or fallback.
func (v BinValue) GetList(i int, fallback []BinValue) []BinValue {
	return ParseBinAt(v, i, BinValue.AsList, fallback)
}

// GetListKey returns the map entry's elements for key, or fallback.
func (v BinValue) GetListKey(key []byte, fallback []BinValue) []BinValue {
	return ParseBinAtKey(v, key, BinValue.AsList, fallback)
}

// GetMap returns the i-th list element's entries, or fallback.
func (v BinValue) GetMap(i int, fallback []BinEntry) []BinEntry {
	return ParseBinAt(v, i, BinValue.AsMap, fallback)
}

// GetMapKey returns the map entry's entries for key, or fallback.
func (v BinValue) GetMapKey(key []byte, fallback []BinEntry) []BinEntry {
	return ParseBinAtKey(v, key, BinValue.AsMap, fallback)
}

// ParseBinAt applies fn to the i-th list element and returns its result,
// or fallback when the index is absent or fn errors.
func ParseBinAt[R any](v BinValue, i int, fn func(BinValue) (R, error), fallback R) R {
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

// ParseBinAtKey applies fn to the map entry for key and returns its
// result, or fallback when the key is absent or fn errors.
func ParseBinAtKey[R any](v BinValue, key []byte, fn func(BinValue) (R, error), fallback R) R {
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

// ParseLeafBinAt applies fn to the i-th list element's leaf, or returns
// fallback when absent or not a leaf.
func ParseLeafBinAt[R any](v BinValue, i int, fn func([]byte) (R, error), fallback R) R {
	return ParseBinAt(v, i, subBinLeaf(fn), fallback)
}

// ParseLeafBinAtKey applies fn to the map entry's leaf for key, or returns
// fallback when absent or not a leaf.
func ParseLeafBinAtKey[R any](v BinValue, key []byte, fn func([]byte) (R, error), fallback R) R {
	return ParseBinAtKey(v, key, subBinLeaf(fn), fallback)
}

// ParseListBinAt applies fn to the i-th list element's elements, or
// returns fallback when absent or not a list.
func ParseListBinAt[R any](v BinValue, i int, fn func([]BinValue) (R, error), fallback R) R {
	return ParseBinAt(v, i, subBinList(fn), fallback)
}

// ParseListBinAtKey applies fn to the map entry's elements for key, or
// returns fallback when absent or not a list.
func ParseListBinAtKey[R any](v BinValue, key []byte, fn func([]BinValue) (R, error), fallback R) R {
	return ParseBinAtKey(v, key, subBinList(fn), fallback)
}

// ParseMapBinAt applies fn to the i-th list element's entries, or returns
// fallback when absent or not a map.
func ParseMapBinAt[R any](v BinValue, i int, fn func([]BinEntry) (R, error), fallback R) R {
	return ParseBinAt(v, i, subBinMap(fn), fallback)
}

// ParseMapBinAtKey applies fn to the map entry's entries for key, or
// returns fallback when absent or not a map.
func ParseMapBinAtKey[R any](v BinValue, key []byte, fn func([]BinEntry) (R, error), fallback R) R {
	return ParseBinAtKey(v, key, subBinMap(fn), fallback)
}

func subBinLeaf[R any](fn func([]byte) (R, error)) func(BinValue) (R, error) {
	return func(e BinValue) (R, error) {
		b, err := e.AsLeaf()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(b)
	}
}

func subBinList[R any](fn func([]BinValue) (R, error)) func(BinValue) (R, error) {
	return func(e BinValue) (R, error) {
		l, err := e.AsList()
		if err != nil {
			var zero R
			return zero, err
		}
		return fn(l)
	}
}

func subBinMap[R any](fn func([]BinEntry) (R, error)) func(BinValue) (R, error) {
	return func(e BinValue) (R, error) {
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
func (v BinValue) Each(fn func(i int, val BinValue)) {
	for i, e := range v.AsListOrNull() {
		fn(i, e)
	}
}

// EachKV visits every (key, value) pair of a map. Visiting a non-map
// yields nothing.
func (v BinValue) EachKV(fn func(key []byte, val BinValue)) {
	for _, e := range v.AsMapOrNull() {
		fn(e.Key, e.Value)
	}
}

// SetIndex replaces the i-th list element.
func (v *BinValue) SetIndex(i int, val BinValue) error {
	if v.kind != KindList {
		return &TypeMismatchError{Requested: KindList, Actual: v.kind}
	}
	if i < 0 || i >= len(v.list) {
		return &ListIndexOutOfRangeError{Index: i, Length: len(v.list)}
	}
	v.list[i] = val
	return nil
}

// SetKey inserts or replaces a map entry.
func (v *BinValue) SetKey(key []byte, val BinValue) {
	v.kind = KindMap
	for i := range v.entries {
		if bytes.Equal(v.entries[i].Key, key) {
			v.entries[i].Value = val
			return
		}
	}
	v.entries = append(v.entries, BinEntry{Key: key, Value: val})
}

// Append adds val to a list in place.
func (v *BinValue) Append(val BinValue) {
	v.kind = KindList
	v.list = append(v.list, val)
}

// Equal reports structural equality: equal Kind and equal contents.
func (v BinValue) Equal(other BinValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindLeaf:
		return bytes.Equal(v.leaf, other.leaf)
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
	default:
		return true
	}
}

// String renders a debug form: leaves as uppercase hex pairs separated by
// spaces, lists as "[a, b, c]", maps as "[k: v, k: v]".
func (v BinValue) String() string {
	switch v.kind {
	case KindLeaf:
		return hexPairs(v.leaf)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = hexPairs(e.Key) + ": " + e.Value.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "none"
	}
}

func hexPairs(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}
