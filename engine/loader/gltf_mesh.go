package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// gltfGeometry is every triangle of a document flattened into one indexed mesh in the
// document's root space.
type gltfGeometry struct {
	name      string
	positions []mgl32.Vec3
	indices   []uint32
}

// flatten walks the default scene (or the first one) and bakes node transforms into the
// positions. A document without scenes contributes each mesh once, untransformed.
func (f *gltfFile) flatten() (*gltfGeometry, error) {
	g := &gltfGeometry{}
	doc := f.doc

	if len(doc.Scenes) == 0 {
		for i := range doc.Meshes {
			if err := f.appendMesh(g, i, mgl32.Ident4()); err != nil {
				return nil, err
			}
		}
		return g, nil
	}

	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene index %d out of range", sceneIndex)
	}

	visited := make(map[int]bool)
	for _, root := range doc.Scenes[sceneIndex].Nodes {
		if err := f.appendNode(g, root, mgl32.Ident4(), visited); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (f *gltfFile) appendNode(g *gltfGeometry, index int, parent mgl32.Mat4, visited map[int]bool) error {
	if index < 0 || index >= len(f.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", index)
	}
	if visited[index] {
		return fmt.Errorf("node %d appears twice in the hierarchy", index)
	}
	visited[index] = true

	node := &f.doc.Nodes[index]
	world := parent.Mul4(nodeMatrix(node))
	if node.Mesh != nil {
		if g.name == "" {
			g.name = node.Name
		}
		if err := f.appendMesh(g, *node.Mesh, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := f.appendNode(g, child, world, visited); err != nil {
			return err
		}
	}
	return nil
}

// appendMesh adds the triangle primitives of a mesh. Other topologies are skipped.
func (f *gltfFile) appendMesh(g *gltfGeometry, index int, transform mgl32.Mat4) error {
	if index < 0 || index >= len(f.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", index)
	}
	mesh := &f.doc.Meshes[index]
	if g.name == "" {
		g.name = mesh.Name
	}

	for p, prim := range mesh.Primitives {
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}
		posIndex, ok := prim.Attributes["POSITION"]
		if !ok {
			continue
		}

		positions, err := f.readVec3(posIndex)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", index, p, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = f.readIndices(*prim.Indices); err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", index, p, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(len(g.positions))
		for _, v := range positions {
			g.positions = append(g.positions, mgl32.TransformCoordinate(mgl32.Vec3(v), transform))
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			n := uint32(len(positions))
			if a >= n || b >= n || c >= n {
				return fmt.Errorf("mesh %d primitive %d: index out of range", index, p)
			}
			g.indices = append(g.indices, base+a, base+b, base+c)
		}
	}
	return nil
}

// nodeMatrix returns the local transform of a node.
func nodeMatrix(n *gltfNode) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}

	m := mgl32.Ident4()
	if n.Translation != nil {
		t := n.Translation
		m = mgl32.Translate3D(t[0], t[1], t[2])
	}
	if n.Rotation != nil {
		r := n.Rotation
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}.Normalize()
		m = m.Mul4(q.Mat4())
	}
	if n.Scale != nil {
		s := n.Scale
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}
