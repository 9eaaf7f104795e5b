package generator

import "fmt"

const promptTemplate = `
Generate a vertical abstract phone wallpaper (aspect ratio 9:16).

Visual Constraint (MUST FOLLOW):
The structural pattern, texture, and movement of the image must resemble a close-up, macro shot of a viscous fluid flow, identical to the physics and patterns of a lava flow. It should have swirling currents, crusting layers, and fluid dynamics.

Creative Freedom (CONDITION ON EMOTION):
The color palette, lighting, luminosity, and "temperature" of the image must be an abstract interpretation of this feeling: "%s".

- If the feeling is sad/melancholic: Use slow, heavy blues, greys, deep purples. Low contrast.
- If the feeling is happy/energetic: Use bright, vibrant yellows, pinks, cyans. High contrast.
- If the feeling is angry: Use jagged, intense reds, blacks, burning oranges.
- If the feeling is calm: Use smooth, flowing teals, seafoams, whites.

Do not create a literal picture of a person or object. It must be a texture/pattern based abstract art piece. High definition, photorealistic texture rendering, 3D render style.
`

// BuildPrompt は気分テキストをそのまま埋め込んだ生成プロンプトを返します。
func BuildPrompt(feeling string) string {
	return fmt.Sprintf(promptTemplate, feeling)
}
