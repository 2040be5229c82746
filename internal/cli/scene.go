package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chazu/holeplan/pkg/engine"
	"github.com/chazu/holeplan/pkg/model"
)

// errInvalidScene is returned when a scene has evaluation or validation
// errors. The individual findings are logged.
var errInvalidScene = errors.New("scene is invalid")

// checkScene evaluates and validates the scene file at path.
func checkScene(path string) (engine.EvalResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return engine.EvalResult{}, err
	}
	res, err := engine.NewEngine().Check(string(src))
	if err != nil {
		return engine.EvalResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// loadScene returns the scene at path, logging every finding. Warnings are
// logged and let through; errors stop the command.
func loadScene(ctx context.Context, path string) (*model.Scene, error) {
	logger := loggerFromContext(ctx)

	res, err := checkScene(path)
	if err != nil {
		return nil, err
	}
	for _, e := range res.Errors {
		logger.Error("evaluation failed", "file", path, "line", e.Line, "err", e.Message)
	}
	for _, e := range res.Validation.Errors {
		logger.Error("invalid element", "element", e.Element, "err", e.Message)
	}
	for _, w := range res.Validation.Warnings {
		logger.Warn(w.Message, "element", w.Element)
	}
	if !res.OK() {
		return nil, fmt.Errorf("%s: %w", path, errInvalidScene)
	}

	s := res.Scene
	logger.Debug("scene loaded",
		"file", path,
		"levels", len(s.Levels),
		"walls", len(s.Walls),
		"conduits", len(s.Conduits))
	return s, nil
}
