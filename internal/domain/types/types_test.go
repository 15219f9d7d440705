package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/mergington/activities/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestActivityJSON(t *testing.T) {
	Convey("Given an Activity", t, func() {
		a := types.Activity{
			Description:     "Competitive basketball training and games",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		}

		Convey("When encoding to JSON", func() {
			raw, err := json.Marshal(a)
			So(err, ShouldBeNil)

			var fields map[string]any
			So(json.Unmarshal(raw, &fields), ShouldBeNil)

			Convey("Then it should expose the four public fields", func() {
				So(fields, ShouldContainKey, "description")
				So(fields, ShouldContainKey, "schedule")
				So(fields, ShouldContainKey, "max_participants")
				So(fields, ShouldContainKey, "participants")
				So(len(fields), ShouldEqual, 4)
			})
		})
	})
}
