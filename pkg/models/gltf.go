package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chronoglobe/globe/pkg/math3d"
)

// LoadGLB loads a binary glTF globe shell. It returns the mesh and the
// embedded base color texture, if the file carries one. Only the surface
// geometry is kept; PBR material parameters are ignored because the era
// texture replaces the surface entirely.
func LoadGLB(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(path)

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < len(doc.Scenes) {
		for _, nodeIdx := range doc.Scenes[sceneIdx].Nodes {
			if err := appendNode(doc, int(nodeIdx), math3d.Identity(), mesh); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(mesh.Vertices) == 0 {
		return nil, nil, fmt.Errorf("gltf %s: no triangle geometry", path)
	}

	// Files without normals get smooth ones; a globe shell is curved.
	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 1e-3 {
			hasNormals = true
			break
		}
	}
	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	return mesh, embeddedBaseTexture(doc), nil
}

// appendNode recursively appends a node's mesh primitives, composing
// node transforms down the hierarchy.
func appendNode(doc *gltf.Document, nodeIdx int, parent math3d.Mat4, mesh *Mesh) error {
	if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) {
		return nil
	}
	node := doc.Nodes[nodeIdx]
	transform := parent.Mul(nodeTransform(node))

	if node.Mesh != nil && int(*node.Mesh) < len(doc.Meshes) {
		for _, prim := range doc.Meshes[*node.Mesh].Primitives {
			if err := appendPrimitive(doc, prim, transform, mesh); err != nil {
				return err
			}
		}
	}
	for _, child := range node.Children {
		if err := appendNode(doc, int(child), transform, mesh); err != nil {
			return err
		}
	}
	return nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, transform math3d.Mat4, mesh *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}
	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return fmt.Errorf("read texcoords: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := MeshVertex{
			Position: transform.MulVec3(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))),
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = transform.MulVec3Dir(math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))).Normalize()
		}
		if i < len(uvs) {
			// glTF uses top-left UV origin; the renderer samples bottom-up.
			v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Faces = append(mesh.Faces, [3]int{base + i, base + i + 1, base + i + 2})
		}
		return nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, [3]int{
			base + int(indices[i]),
			base + int(indices[i+1]),
			base + int(indices[i+2]),
		})
	}
	return nil
}

// nodeTransform returns the node's local transform: the explicit matrix
// when present, otherwise composed TRS.
func nodeTransform(node *gltf.Node) math3d.Mat4 {
	if node.Matrix != emptyMatrix && node.Matrix != identityMatrix {
		// glTF matrices are column-major.
		var m math3d.Mat4
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				m.M[row*4+col] = node.Matrix[col*4+row]
			}
		}
		return m
	}

	t := math3d.Translate(math3d.V3(node.Translation[0], node.Translation[1], node.Translation[2]))
	r := quatToMat4(node.Rotation)
	s := math3d.Scale(math3d.V3(nonZero(node.Scale[0]), nonZero(node.Scale[1]), nonZero(node.Scale[2])))
	return t.Mul(r).Mul(s)
}

var (
	emptyMatrix    = [16]float64{}
	identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
)

func nonZero(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

// quatToMat4 converts a glTF rotation quaternion (x, y, z, w) to a matrix.
func quatToMat4(q [4]float64) math3d.Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	if x == 0 && y == 0 && z == 0 && w == 0 {
		return math3d.Identity()
	}
	m := math3d.Identity()
	m.M[0] = 1 - 2*(y*y+z*z)
	m.M[1] = 2 * (x*y - z*w)
	m.M[2] = 2 * (x*z + y*w)
	m.M[4] = 2 * (x*y + z*w)
	m.M[5] = 1 - 2*(x*x+z*z)
	m.M[6] = 2 * (y*z - x*w)
	m.M[8] = 2 * (x*z - y*w)
	m.M[9] = 2 * (y*z + x*w)
	m.M[10] = 1 - 2*(x*x+y*y)
	return m
}

// embeddedBaseTexture decodes the first material's base color image from
// the binary chunk, or nil when the file has none.
func embeddedBaseTexture(doc *gltf.Document) image.Image {
	for _, mat := range doc.Materials {
		if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorTexture == nil {
			continue
		}
		texIdx := int(mat.PBRMetallicRoughness.BaseColorTexture.Index)
		if texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
			continue
		}
		img := doc.Images[*doc.Textures[texIdx].Source]
		if img.BufferView == nil {
			continue
		}
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer].Data
		if int(bv.ByteOffset+bv.ByteLength) > len(buf) {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(buf[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]))
		if err != nil {
			continue
		}
		return decoded
	}
	return nil
}
