package model

type ProgressRequest struct {
	Birthday string  `json:"birthday"`
	Gender   *Gender `json:"gender,omitempty"`
	Nation   *string `json:"nation,omitempty"`
}
