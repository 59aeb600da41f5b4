package domain

import (
	"strings"

	"selectiq/internal/apperr"
)

// commentSeparator joins comments inside the single persisted text column.
// The codec does not escape it: a comment containing the exact separator
// sequence will corrupt positional indexing on decode. Known fragility of
// the single-column thread model; a move to a sub-table only touches this
// file and the interview repository.
const commentSeparator = "\n---\n"

var (
	// ErrEmptyComment rejects blank comment submissions.
	ErrEmptyComment = apperr.ValidationMsg("comment", "comment cannot be empty")
	// ErrNoComments reports deletion against an interview with no thread.
	ErrNoComments = apperr.NotFound("comments")
)

// EncodeComment appends comment to an existing blob.
func EncodeComment(existing, comment string) string {
	if existing == "" {
		return comment
	}
	return existing + commentSeparator + comment
}

// DecodeComments splits a blob into its append-ordered comments.
// An empty blob decodes to an empty thread.
func DecodeComments(blob string) []string {
	if blob == "" {
		return []string{}
	}
	return strings.Split(blob, commentSeparator)
}

// DeleteCommentAt removes the comment at index and re-encodes the thread.
func DeleteCommentAt(blob string, index int) (string, error) {
	comments := DecodeComments(blob)
	if index < 0 || index >= len(comments) {
		return "", apperr.Index(index, len(comments))
	}
	comments = append(comments[:index], comments[index+1:]...)
	return strings.Join(comments, commentSeparator), nil
}

// AppendComment adds a comment to the interview's thread.
func (iv *Interview) AppendComment(comment string) {
	iv.Comments = EncodeComment(iv.Comments, comment)
}

// CommentList returns the interview's comments in append order.
func (iv *Interview) CommentList() []string {
	return DecodeComments(iv.Comments)
}

// RemoveCommentAt deletes the comment at index from the thread.
func (iv *Interview) RemoveCommentAt(index int) error {
	blob, err := DeleteCommentAt(iv.Comments, index)
	if err != nil {
		return err
	}
	iv.Comments = blob
	return nil
}
