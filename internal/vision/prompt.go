package vision

import "fmt"

// BuildScenePrompt builds the system and user prompts for a description
// request. withLocation adds the coordinate-resolution instruction.
func BuildScenePrompt(coords *Coordinates) (string, string) {
	systemPrompt := `You are the eyes of a visually impaired user. You describe camera
snapshots so they can be read aloud.

PRINCIPLES:
- Describe only what is visible in the image. Never invent details.
- Lead with what matters for safe navigation: obstacles, vehicles, people, steps, open doors.
- Use short, plain sentences suitable for text-to-speech. No markdown, no lists, no emoji.
- Mention approximate positions (left, right, ahead) and distances when they can be judged.
- Keep the whole description under 80 words.
- Return ONLY valid JSON.`

	userPrompt := `Describe this scene for the listener.

Return JSON with exactly this format:

{
  "description": "spoken-style description of the scene"
}`

	if coords != nil {
		userPrompt = fmt.Sprintf(`Describe this scene for the listener.

The photo was taken at latitude %.6f, longitude %.6f. Resolve these
coordinates to the most specific human-readable place label you can, in
"Barangay, Municipality, Province" style. If you cannot resolve them,
use an empty string.

Return JSON with exactly this format:

{
  "description": "spoken-style description of the scene",
  "location_label": "Barangay, Municipality, Province"
}`, coords.Latitude, coords.Longitude)
	}

	return systemPrompt, userPrompt
}
