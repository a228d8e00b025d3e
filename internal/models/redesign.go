package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Default option values applied when a redesign request omits them
const (
	DefaultDesignType            = "Interior"
	DefaultAIIntervention        = "Mid"
	DefaultNoDesign              = 1
	DefaultKeepStructuralElement = true
)

// RedesignRequest is the JSON body accepted by the submit endpoint.
// Fields are loosely typed and coerced by Options.
type RedesignRequest struct {
	ImageBase64           Value `json:"imageBase64" validate:"required" swaggertype:"string"`
	DesignType            Value `json:"design_type" swaggertype:"string"`
	RoomType              Value `json:"room_type" swaggertype:"string"`
	DesignStyle           Value `json:"design_style" swaggertype:"string"`
	AIIntervention        Value `json:"ai_intervention" swaggertype:"string"`
	NoDesign              Value `json:"no_design" swaggertype:"number"`
	CustomInstruction     Value `json:"custom_instruction" swaggertype:"string"`
	HouseAngle            Value `json:"house_angle" swaggertype:"string"`
	GardenType            Value `json:"garden_type" swaggertype:"string"`
	KeepStructuralElement Value `json:"keep_structural_element" swaggertype:"boolean"`
}

// ParseRedesignRequest decodes a submit body. Only malformed JSON is an
// error; a body that is not an object yields an empty request, which then
// fails validation for the missing image.
func ParseRedesignRequest(data []byte) (*RedesignRequest, error) {
	if !json.Valid(data) {
		return nil, errors.New("malformed JSON body")
	}

	req := &RedesignRequest{}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return req, nil
	}
	if err := json.Unmarshal(trimmed, req); err != nil {
		return nil, err
	}
	return req, nil
}

// StatusRequest identifies an upstream job to poll
type StatusRequest struct {
	JobID string `json:"id" validate:"required"`
}

// RedesignOptions is the fully defaulted option set sent upstream
type RedesignOptions struct {
	Image                 string
	DesignType            string
	RoomType              string
	DesignStyle           string
	AIIntervention        string
	NoDesign              string
	CustomInstruction     string
	HouseAngle            string
	GardenType            string
	KeepStructuralElement bool
}

// FormField is a single multipart form field, kept in send order
type FormField struct {
	Name  string
	Value string
}

// DefaultRedesignOptions returns the option set with every default applied
func DefaultRedesignOptions() RedesignOptions {
	return RedesignOptions{
		DesignType:            DefaultDesignType,
		AIIntervention:        DefaultAIIntervention,
		NoDesign:              strconv.Itoa(DefaultNoDesign),
		KeepStructuralElement: DefaultKeepStructuralElement,
	}
}

// Options resolves the request against the defaults. Defaults apply only
// to absent fields: an explicit null is sent as "null", or as false for
// keep_structural_element. Optional strings are kept only when truthy.
func (r *RedesignRequest) Options() RedesignOptions {
	opts := DefaultRedesignOptions()
	opts.Image = r.ImageBase64.String()

	if r.DesignType.IsSet() {
		opts.DesignType = r.DesignType.String()
	}
	if r.AIIntervention.IsSet() {
		opts.AIIntervention = r.AIIntervention.String()
	}
	if r.NoDesign.IsSet() {
		opts.NoDesign = r.NoDesign.String()
	}
	if r.KeepStructuralElement.IsSet() {
		opts.KeepStructuralElement = r.KeepStructuralElement.Truthy()
	}

	opts.RoomType = optionalString(r.RoomType)
	opts.DesignStyle = optionalString(r.DesignStyle)
	opts.CustomInstruction = optionalString(r.CustomInstruction)
	opts.HouseAngle = optionalString(r.HouseAngle)
	opts.GardenType = optionalString(r.GardenType)

	return opts
}

// FormFields returns the multipart fields for the upstream submit call.
// Optional string fields are only included when non-empty.
func (o RedesignOptions) FormFields() []FormField {
	fields := []FormField{
		{Name: "image", Value: o.Image},
		{Name: "design_type", Value: o.DesignType},
		{Name: "ai_intervention", Value: o.AIIntervention},
		{Name: "no_design", Value: o.NoDesign},
	}

	optional := []FormField{
		{Name: "design_style", Value: o.DesignStyle},
		{Name: "room_type", Value: o.RoomType},
		{Name: "custom_instruction", Value: o.CustomInstruction},
		{Name: "house_angle", Value: o.HouseAngle},
		{Name: "garden_type", Value: o.GardenType},
	}
	for _, f := range optional {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}

	return append(fields, FormField{
		Name:  "keep_structural_element",
		Value: strconv.FormatBool(o.KeepStructuralElement),
	})
}

func optionalString(v Value) string {
	if !v.Truthy() {
		return ""
	}
	return v.String()
}
