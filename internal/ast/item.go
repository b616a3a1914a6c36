package ast

import "runefmt/internal/source"

// ItemKind classifies top-level declarations.
type ItemKind uint8

const (
	// ItemVerbatim is a declaration outside the formatted subset
	// (trait bodies, mod, use, const, type aliases, ...). Re-emitted byte-for-byte.
	ItemVerbatim ItemKind = iota
	ItemStruct
	ItemImpl
	ItemFn
)

// Item is one top-level declaration. Span covers the declaration itself,
// excluding the leading comments stored in Comments.
type Item struct {
	Kind        ItemKind
	Span        source.Span
	Payload     PayloadID
	Comments    []Comment
	BlankBefore bool // пустая строка перед item (или его комментариями)
}

// StructItem is a struct declaration with named fields.
type StructItem struct {
	Name       string
	HeaderSpan source.Span // от первого токена до '{' включительно
	Fields     []FieldDecl
	// TrailComments sit between the last field and the closing brace.
	TrailComments []Comment
}

// FieldDecl is one named struct field. Type text is preserved verbatim.
type FieldDecl struct {
	Comments    []Comment
	Attrs       []string // сырые строки атрибутов: "#[...]"
	Pub         bool
	Name        string
	Type        string
	Span        source.Span
	BlankBefore bool // разрывает группу выравнивания
}

// ImplMemberKind orders members inside one impl body.
type ImplMemberKind uint8

const (
	MemberAssocType ImplMemberKind = iota
	MemberAssocConst
	MemberMacro
	MemberMethod
)

// ImplMember is one member of an impl body. DeclIndex is the original
// declaration position; reordering is a stable permutation keyed on it.
type ImplMember struct {
	Kind        ImplMemberKind
	Comments    []Comment
	Attrs       []string
	Span        source.Span // весь member без leading-комментариев
	Fn          PayloadID   // только для MemberMethod
	DeclIndex   int
	BlankBefore bool
}

// ImplItem is `impl [Trait for] Type { members }`.
type ImplItem struct {
	Trait         string // пусто для inherent impl
	Type          string
	HeaderSpan    source.Span // от 'impl' до '{' включительно
	Members       []ImplMember
	TrailComments []Comment
}

// FnItem is a function: a verbatim signature plus a parsed block body.
type FnItem struct {
	Name    string
	SigSpan source.Span // от первого модификатора до закрывающего токена сигнатуры
	Body    StmtID      // StmtBlock; NoStmtID для объявлений без тела
}

// Items manages allocation of top-level declarations and their payloads.
type Items struct {
	Arena   *Arena[Item]
	Structs *Arena[StructItem]
	Impls   *Arena[ImplItem]
	Fns     *Arena[FnItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Structs: NewArena[StructItem](capHint),
		Impls:   NewArena[ImplItem](capHint),
		Fns:     NewArena[FnItem](capHint),
	}
}

func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

func (it *Items) new(kind ItemKind, span source.Span, payload PayloadID, comments []Comment, blank bool) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind:        kind,
		Span:        span,
		Payload:     payload,
		Comments:    comments,
		BlankBefore: blank,
	}))
}

// NewVerbatim creates an item that is re-emitted from its span untouched.
func (it *Items) NewVerbatim(span source.Span, comments []Comment, blank bool) ItemID {
	return it.new(ItemVerbatim, span, NoPayloadID, comments, blank)
}

// NewStruct creates a struct item.
func (it *Items) NewStruct(span source.Span, data StructItem, comments []Comment, blank bool) ItemID {
	payload := it.Structs.Allocate(data)
	return it.new(ItemStruct, span, PayloadID(payload), comments, blank)
}

// Struct returns the struct payload for the given item ID.
func (it *Items) Struct(id ItemID) (*StructItem, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemStruct {
		return nil, false
	}
	return it.Structs.Get(uint32(item.Payload)), true
}

// NewImpl creates an impl item.
func (it *Items) NewImpl(span source.Span, data ImplItem, comments []Comment, blank bool) ItemID {
	payload := it.Impls.Allocate(data)
	return it.new(ItemImpl, span, PayloadID(payload), comments, blank)
}

// Impl returns the impl payload for the given item ID.
func (it *Items) Impl(id ItemID) (*ImplItem, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemImpl {
		return nil, false
	}
	return it.Impls.Get(uint32(item.Payload)), true
}

// NewFnPayload allocates a function payload shared by items and impl methods.
func (it *Items) NewFnPayload(data FnItem) PayloadID {
	return PayloadID(it.Fns.Allocate(data))
}

// NewFn creates a top-level fn item.
func (it *Items) NewFn(span source.Span, payload PayloadID, comments []Comment, blank bool) ItemID {
	return it.new(ItemFn, span, payload, comments, blank)
}

// Fn returns the fn payload for the given item ID.
func (it *Items) Fn(id ItemID) (*FnItem, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return it.Fns.Get(uint32(item.Payload)), true
}

// FnByPayload resolves a method payload directly (for impl members).
func (it *Items) FnByPayload(id PayloadID) *FnItem {
	return it.Fns.Get(uint32(id))
}
