package geo

import (
	"context"
	"fmt"
)

// Permission is the user's decision about sharing their location.
type Permission string

const (
	Granted Permission = "granted"
	Denied  Permission = "denied"
	Prompt  Permission = "prompt"
)

// ParsePermission accepts granted, denied or prompt. An empty string means
// prompt.
func ParsePermission(s string) (Permission, error) {
	switch Permission(s) {
	case Granted, Denied, Prompt:
		return Permission(s), nil
	case "":
		return Prompt, nil
	default:
		return "", fmt.Errorf("invalid geo permission %q (want granted, denied or prompt)", s)
	}
}

// Prompter asks the user whether to share their location.
type Prompter interface {
	Prompt(ctx context.Context) (bool, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context) (bool, error)

func (f PrompterFunc) Prompt(ctx context.Context) (bool, error) { return f(ctx) }

// AlwaysAllow grants without asking. The TUI uses it because the key press
// that triggered the lookup is the user's consent.
var AlwaysAllow Prompter = PrompterFunc(func(context.Context) (bool, error) { return true, nil })
