package models

// RepeatIndefinite is the repeatCount of every loader animation.
const RepeatIndefinite = "indefinite"

// Shape describes one pulsing rectangle of a loader.
type Shape struct {
	Index       int       `json:"index" msgpack:"index"`
	ID          string    `json:"id" msgpack:"id"`
	X           float64   `json:"x" msgpack:"x"`
	Y           float64   `json:"y" msgpack:"y"`
	Width       float64   `json:"width" msgpack:"width"`
	Height      float64   `json:"height" msgpack:"height"`
	RX          float64   `json:"rx" msgpack:"rx"`
	RY          float64   `json:"ry" msgpack:"ry"`
	Fill        string    `json:"fill" msgpack:"fill"`
	FillOpacity float64   `json:"fillOpacity" msgpack:"fillOpacity"`
	Animation   Animation `json:"animation" msgpack:"animation"`
}

// Animation is the declarative opacity animation attached to a Shape.
type Animation struct {
	AttributeName string    `json:"attributeName" msgpack:"attributeName"`
	Values        []float64 `json:"values" msgpack:"values"` // keyframes
	Begin         float64   `json:"begin" msgpack:"begin"`   // start delay, ms
	Dur           float64   `json:"dur" msgpack:"dur"`       // cycle length, ms
	RepeatCount   string    `json:"repeatCount" msgpack:"repeatCount"`
}
