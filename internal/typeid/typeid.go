package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser     = "user"
	PrefixProject  = "proj"
	PrefixSnapshot = "snap"
	PrefixBoard    = "board"
	PrefixElement  = "el"
	PrefixGroup    = "grp"
	PrefixGuide    = "guide"
	PrefixAsset    = "asset"
	PrefixOp       = "op"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string     { return New(PrefixUser) }
func NewProjectID() string  { return New(PrefixProject) }
func NewSnapshotID() string { return New(PrefixSnapshot) }
func NewBoardID() string    { return New(PrefixBoard) }
func NewElementID() string  { return New(PrefixElement) }
func NewGroupID() string    { return New(PrefixGroup) }
func NewGuideID() string    { return New(PrefixGuide) }
func NewAssetID() string    { return New(PrefixAsset) }
func NewOpID() string       { return New(PrefixOp) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
