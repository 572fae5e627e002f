package httpapi

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
)

// Camera payloads on the binary path are a google.protobuf.Struct with
// the same field names as the JSON body.

func cameraInputFromProto(p *structpb.Struct) types.CameraInput {
	f := p.GetFields()
	return types.CameraInput{
		Plate:     f["plate"].GetStringValue(),
		Direction: f["direction"].GetStringValue(),
	}
}

func cameraResponseToProto(r types.CameraResponse) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"ok":          structpb.NewBoolValue(r.OK),
		"plate":       structpb.NewStringValue(r.Plate),
		"direction":   structpb.NewStringValue(r.Direction),
		"server_time": structpb.NewStringValue(r.ServerTime),
	}}
}
