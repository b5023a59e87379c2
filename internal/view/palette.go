package view

import (
	"fmt"

	"github.com/ivlev/datasettag/internal/tags"
)

type rgb struct{ r, g, b uint8 }

func (c rgb) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.r, c.g, c.b)
}

// triggerColor is used for the trigger word chip.
var triggerColor = rgb{255, 209, 220}

var palette = map[tags.Category]rgb{
	tags.Type:               {255, 229, 180},
	tags.Subject:            {204, 204, 255},
	tags.Shot:               {170, 255, 195},
	tags.Perspective:        {172, 229, 238},
	tags.Pose:               {255, 250, 205},
	tags.Location:           {200, 191, 231},
	tags.Action:             {208, 240, 192},
	tags.Gaze:               {176, 224, 230},
	tags.Mouth:              {255, 182, 193},
	tags.MouthAction:        {255, 218, 185},
	tags.Hair:               {230, 190, 255},
	tags.Limbs:              {255, 127, 80},
	tags.SubjectDescription: {135, 206, 235},
	tags.Scenery:            {160, 255, 224},
	tags.SceneDescription:   {159, 226, 191},
	tags.Lighting:           {224, 176, 255},
	tags.Miscellaneous:      {188, 143, 143},
}

// Color returns the chip background of a category as #RRGGBB.
func Color(c tags.Category) string {
	if col, ok := palette[c]; ok {
		return col.hex()
	}
	return "#FFFFFF"
}
