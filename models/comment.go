package models

import "time"

// Comment is stored flat; threading is reconstructed at read time via
// ParentCommentID. Exactly one of ProposalID/ContractID is set.
type Comment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	ProposalID      *uint      `json:"proposal_id,omitempty" gorm:"index"`
	ContractID      *uint      `json:"contract_id,omitempty" gorm:"index"`
	AuthorName      string     `json:"author_name" gorm:"not null"`
	Content         string     `json:"content" gorm:"type:text;not null"`
	HighlightedText string     `json:"highlighted_text,omitempty"`
	BlockID         string     `json:"block_id,omitempty" gorm:"index"`
	ParentCommentID *uint      `json:"parent_comment_id,omitempty" gorm:"index"`
	IsResolved      bool       `json:"is_resolved"`
	CreatedAt       time.Time  `json:"created_at"`
	Replies         []*Comment `json:"replies" gorm:"-"`
}

// OrganizeComments rebuilds the reply forest from a flat list. Nodes are
// shallow-copied so the input stays untouched. A comment whose parent id
// is missing from the list becomes a root; relative order of roots and of
// replies within a parent follows the input order.
func OrganizeComments(flat []Comment) []*Comment {
	nodes := make(map[uint]*Comment, len(flat))
	ordered := make([]*Comment, 0, len(flat))
	for i := range flat {
		node := flat[i]
		node.Replies = []*Comment{}
		nodes[node.ID] = &node
		ordered = append(ordered, &node)
	}

	var roots []*Comment
	for _, node := range ordered {
		if node.ParentCommentID != nil {
			if parent, ok := nodes[*node.ParentCommentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// FilterByBlock narrows a flat list to comments on one block. Applied
// before threading, so a reply whose parent is on another block gets
// orphaned to root by OrganizeComments.
func FilterByBlock(flat []Comment, blockID string) []Comment {
	out := make([]Comment, 0, len(flat))
	for _, c := range flat {
		if c.BlockID == blockID {
			out = append(out, c)
		}
	}
	return out
}
