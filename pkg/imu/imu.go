// Package imu drives the globe orientation from a hardware IMU that
// streams quaternions over a serial port, one "i,j,k,real" line per
// sample.
package imu

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fortio.org/log"
	"go.bug.st/serial"
)

// Quaternion is a unit rotation quaternion as emitted by the device.
type Quaternion struct {
	I, J, K, Real float64
}

// Sample is an orientation reading converted to globe angles.
type Sample struct {
	Pitch float64
	Yaw   float64
}

// retryDelay is the wait between serial reconnect attempts.
const retryDelay = 5 * time.Second

// Feed reads quaternions from a serial port and publishes the latest
// orientation sample. The channel holds only the most recent sample:
// the frame loop polls it and slow frames never block the reader.
type Feed struct {
	port    string
	baud    int
	samples chan Sample
}

// NewFeed creates a feed for the given serial port and baud rate.
func NewFeed(port string, baud int) *Feed {
	return &Feed{
		port:    port,
		baud:    baud,
		samples: make(chan Sample, 1),
	}
}

// Samples returns the channel carrying the most recent orientation.
func (f *Feed) Samples() <-chan Sample {
	return f.samples
}

// Run reads the port until ctx is cancelled, reopening it after errors.
func (f *Feed) Run(ctx context.Context) {
	mode := &serial.Mode{BaudRate: f.baud}
	for ctx.Err() == nil {
		port, err := serial.Open(f.port, mode)
		if err != nil {
			log.Errf("imu: open %s: %v, retrying in %v", f.port, err, retryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}
		log.Infof("imu: reading %s at %d baud", f.port, f.baud)

		scanner := bufio.NewScanner(port)
		for scanner.Scan() {
			if ctx.Err() != nil {
				break
			}
			q, err := ParseQuaternion(scanner.Text())
			if err != nil {
				log.Debugf("imu: %v", err)
				continue
			}
			f.publish(q.PitchYaw())
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			log.Errf("imu: read %s: %v", f.port, err)
		}
		port.Close()
	}
}

// publish replaces the pending sample with the newest one.
func (f *Feed) publish(s Sample) {
	select {
	case f.samples <- s:
	default:
		select {
		case <-f.samples:
		default:
		}
		select {
		case f.samples <- s:
		default:
		}
	}
}

// ParseQuaternion parses a device line in "i,j,k,real" format.
func ParseQuaternion(line string) (Quaternion, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 4 {
		return Quaternion{}, fmt.Errorf("quaternion line: expected 4 values, got %d", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Quaternion{}, fmt.Errorf("quaternion component %d: %w", i, err)
		}
		vals[i] = v
	}
	return Quaternion{I: vals[0], J: vals[1], K: vals[2], Real: vals[3]}, nil
}

// PitchYaw extracts the globe pitch and yaw from the quaternion using
// the aerospace Tait-Bryan convention. Roll is discarded: the globe
// only rotates on two axes.
func (q Quaternion) PitchYaw() Sample {
	x, y, z, w := q.I, q.J, q.K, q.Real

	// Pitch (rotation about X), clamped at the gimbal poles.
	sinp := 2 * (w*y - z*x)
	var pitch float64
	switch {
	case sinp >= 1:
		pitch = math.Pi / 2
	case sinp <= -1:
		pitch = -math.Pi / 2
	default:
		pitch = math.Asin(sinp)
	}

	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return Sample{Pitch: pitch, Yaw: yaw}
}
