package git

import (
	"context"
	"errors"

	apperrors "github.com/penwyp/vendsync/internal/errors"
)

// AncestryOracle answers strict ancestry queries between two refs.
type AncestryOracle struct {
	runner Runner
	refs   *RefResolver
}

func NewAncestryOracle(runner Runner) *AncestryOracle {
	return &AncestryOracle{runner: runner, refs: NewRefResolver(runner)}
}

// IsStrictAncestor reports whether ancestor is an ancestor of descendant
// and the two are distinct commits. Formally a commit is its own ancestor;
// this predicate reports false for that case so "no change" is never
// mistaken for "found an alternative". git merge-base --is-ancestor is
// ternary: exit 0 means yes, exit 1 means no, anything else is an
// AncestryCheckError.
func (o *AncestryOracle) IsStrictAncestor(ctx context.Context, projPath, ancestor, descendant string) (bool, error) {
	ancestorSHA, err := o.refs.RevParse(ctx, projPath, ancestor)
	if err != nil {
		return false, &apperrors.AncestryCheckError{Ancestor: ancestor, Descendant: descendant, Err: err}
	}
	descendantSHA, err := o.refs.RevParse(ctx, projPath, descendant)
	if err != nil {
		return false, &apperrors.AncestryCheckError{Ancestor: ancestor, Descendant: descendant, Err: err}
	}
	if ancestorSHA == descendantSHA {
		return false, nil
	}

	_, err = o.runner.Run(ctx, projPath, "git", "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 1 {
		return false, nil
	}
	return false, &apperrors.AncestryCheckError{Ancestor: ancestor, Descendant: descendant, Err: err}
}
