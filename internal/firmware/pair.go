// SPDX-License-Identifier: MPL-2.0

package firmware

import (
	"context"
	"log/slog"

	"fpbuild/internal/container"
)

// PairRequest describes one logical paired build: a car and, optionally, its
// paired fob, sharing the same deployment and therefore the same secrets
// volume.
type PairRequest struct {
	Car DeviceRequest
	// Fob is the paired fob build. Nil builds only the car.
	Fob *DeviceRequest
}

// BuildPair builds a car and its paired fob as one logical operation.
//
// The two device builds are independent for correctness, but the shared
// secrets volume is treated as a single-writer resource: the car build runs
// to completion before the fob build starts, and log ordering is always car
// before fob so repeated pair builds produce reproducible output. A car
// failure aborts the operation before the fob step.
func BuildPair(ctx context.Context, engine container.Engine, req PairRequest) (Result, error) {
	slog.Info("building car/fob pair",
		"tag", req.Car.Tag(), "deployment", req.Car.Deployment, "car", req.Car.Device)

	carResult, err := BuildDevice(ctx, engine, req.Car)
	if err != nil {
		return Result{}, err
	}

	if req.Fob == nil {
		return Aggregate(carResult), nil
	}

	fobResult, err := BuildDevice(ctx, engine, *req.Fob)
	if err != nil {
		return Result{}, err
	}

	return Aggregate(carResult, fobResult), nil
}
