package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/virtualide/pkg/adapters/script"
	"github.com/aretw0/virtualide/pkg/domain"
)

// Validate checks every script against the action vocabulary without
// replaying it, writing one line per problem. It fails when any script is invalid.
func Validate(paths []string, w io.Writer) error {
	loader := script.NewLoader("")
	var failed int
	for _, p := range paths {
		sc, err := loader.LoadScript(p)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", p, err)
			failed++
			continue
		}

		if err := script.Validate(sc.Actions); err != nil {
			failed++
			for _, e := range unwrapJoined(err) {
				var actionErr *domain.ActionError
				if errors.As(e, &actionErr) {
					fmt.Fprintf(w, "%s: action %d (%s): %s\n", p, actionErr.Index, actionErr.Action.Name, domain.ErrorCode(actionErr.Err))
					continue
				}
				fmt.Fprintf(w, "%s: %v\n", p, e)
			}
			continue
		}
		fmt.Fprintf(w, "%s: ok (%d actions)\n", p, len(sc.Actions))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scripts invalid", failed, len(paths))
	}
	return nil
}

func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
