package domain

// Viewer is a denormalized identity snapshot: the values are captured when a post,
// view or reaction is recorded and are not refreshed later.
type Viewer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarRef string `json:"avatar_ref"`
}
