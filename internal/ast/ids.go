package ast

type (
	FileID      uint32
	ExprID      uint32
	AttrGroupID uint32
	// подсущности
	PayloadID uint32
)

const (
	NoFileID      FileID      = 0
	NoExprID      ExprID      = 0
	NoAttrGroupID AttrGroupID = 0
	NoPayloadID   PayloadID   = 0
)

func (id FileID) IsValid() bool      { return id != NoFileID }
func (id ExprID) IsValid() bool      { return id != NoExprID }
func (id AttrGroupID) IsValid() bool { return id != NoAttrGroupID }
func (id PayloadID) IsValid() bool   { return id != NoPayloadID }
