package host

import (
	"context"
	"encoding/json"
)

const GreetCommand = "greet"

type GreetArgs struct {
	Name string `json:"name"`
}

// Greet returns GreetMessage for the name argument.
func Greet(ctx context.Context, args json.RawMessage) (any, error) {
	var in GreetArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return GreetMessage(in.Name), nil
}

func GreetMessage(name string) string {
	return "Hello, " + name + "! You've been greeted from Go!"
}
