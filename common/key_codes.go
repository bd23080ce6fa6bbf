package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC   = 67  // C key (ASCII), logs the active camera
	KeyI   = 73  // I key (ASCII), logs the pointer state
	KeyO   = 79  // O key (ASCII), selects the orthographic camera
	KeyP   = 80  // P key (ASCII), selects the perspective camera
	KeyR   = 82  // R key (ASCII), resets the view
	KeyEsc = 256 // Escape key (GLFW), closes the window

	Key0 = 48 // 0 key (ASCII), selects the perspective camera
	Key1 = 49 // 1 key (ASCII), selects the orthographic camera
)
