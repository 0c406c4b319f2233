package imu

import (
	"math"
	"testing"
)

func TestParseQuaternion(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Quaternion
		wantErr bool
	}{
		{"identity", "0,0,0,1", Quaternion{0, 0, 0, 1}, false},
		{"whitespace", "  0.1, -0.2 ,0.3, 0.9 \n", Quaternion{0.1, -0.2, 0.3, 0.9}, false},
		{"too few", "1,2,3", Quaternion{}, true},
		{"too many", "1,2,3,4,5", Quaternion{}, true},
		{"garbage", "a,b,c,d", Quaternion{}, true},
		{"empty", "", Quaternion{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuaternion(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuaternion(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseQuaternion(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestPitchYaw(t *testing.T) {
	// Identity: no rotation.
	s := Quaternion{0, 0, 0, 1}.PitchYaw()
	if s.Pitch != 0 || s.Yaw != 0 {
		t.Errorf("identity = %+v, want zero", s)
	}

	// 90 degree yaw: quaternion (0, 0, sin45, cos45).
	h := math.Sqrt2 / 2
	s = Quaternion{0, 0, h, h}.PitchYaw()
	if math.Abs(s.Yaw-math.Pi/2) > 1e-9 {
		t.Errorf("yaw = %v, want pi/2", s.Yaw)
	}
	if math.Abs(s.Pitch) > 1e-9 {
		t.Errorf("pitch = %v, want 0", s.Pitch)
	}
}

func TestPitchYawGimbalClamp(t *testing.T) {
	// A slightly denormalized quaternion can push sin(pitch) beyond 1;
	// the conversion must clamp instead of returning NaN.
	s := Quaternion{0, 0.7072, 0, 0.7072}.PitchYaw()
	if math.IsNaN(s.Pitch) {
		t.Fatal("pitch is NaN at gimbal pole")
	}
	if math.Abs(s.Pitch-math.Pi/2) > 1e-3 {
		t.Errorf("pitch = %v, want ~pi/2", s.Pitch)
	}
}

func TestPublishKeepsLatest(t *testing.T) {
	f := NewFeed("/dev/null", 115200)
	f.publish(Sample{Yaw: 1})
	f.publish(Sample{Yaw: 2})
	f.publish(Sample{Yaw: 3})

	select {
	case s := <-f.Samples():
		if s.Yaw != 3 {
			t.Errorf("got sample %+v, want the latest (yaw 3)", s)
		}
	default:
		t.Fatal("no sample pending")
	}
}
