package model

import "encoding/json"

// Todo is a contact record as the backend stores it.
// The backend emits the id as "_id"; "id" is accepted too.
type Todo struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (t *Todo) UnmarshalJSON(b []byte) error {
	var raw struct {
		MongoID     string `json:"_id"`
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.ID = raw.MongoID
	if t.ID == "" {
		t.ID = raw.ID
	}
	t.Title = raw.Title
	t.Description = raw.Description
	return nil
}

// TodoInput is the writable part of a Todo (create and update bodies).
type TodoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
