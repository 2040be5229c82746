package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/holeplan/pkg/kernel/sdfx"
	"github.com/chazu/holeplan/pkg/tessellate"
)

// rolePalette assigns each kind of element a display color.
var rolePalette = map[string]string{
	tessellate.RoleWall:    "#B0B7BF",
	tessellate.RoleConduit: "#E67E22",
}

// meshData is the serializable form of one preview mesh.
type meshData struct {
	Element  string    `json:"element" yaml:"element"`
	Role     string    `json:"role" yaml:"role"`
	Color    string    `json:"color" yaml:"color"`
	Vertices []float32 `json:"vertices" yaml:"vertices"`
	Normals  []float32 `json:"normals" yaml:"normals"`
	Indices  []uint32  `json:"indices" yaml:"indices"`
}

// previewDocument is the output of the preview command.
type previewDocument struct {
	Scene    string     `json:"scene" yaml:"scene"`
	Openings int        `json:"openings" yaml:"openings"`
	Meshes   []meshData `json:"meshes" yaml:"meshes"`
}

func (a *app) newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <scene>",
		Short: "Write meshes of the walls with openings cut and of the conduits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := loadScene(ctx, args[0])
			if err != nil {
				return err
			}

			k := sdfx.New(a.cfg.KernelOptions()...)
			specs, _, err := runPlacement(ctx, k, s, a.cfg)
			if err != nil {
				return err
			}

			p := newProgress(logger)
			meshes, err := tessellate.Tessellate(k, s, specs)
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}

			doc := previewDocument{
				Scene:    args[0],
				Openings: len(specs),
				Meshes:   make([]meshData, 0, len(meshes)),
			}
			triangles := 0
			for _, m := range meshes {
				doc.Meshes = append(doc.Meshes, meshData{
					Element:  m.Element,
					Role:     m.Role,
					Color:    rolePalette[m.Role],
					Vertices: m.Vertices,
					Normals:  m.Normals,
					Indices:  m.Indices,
				})
				triangles += m.TriangleCount()
			}
			p.done(fmt.Sprintf("Tessellated %d meshes, %d triangles, at %d cells", len(meshes), triangles, a.cfg.Preview.MeshCells))

			return a.writeResult(doc)
		},
	}
}
