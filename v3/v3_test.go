/*
 * v3_test.go
 *
 * Copyright 2013 Raul Mera <rmera@zinc>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 */

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	assert.Error(Te, err)
	_, err = NewMatrix(nil)
	assert.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))
	A.SetVec(0, [3]float64{-1, -2, -3})
	assert.Equal(Te, -2.0, A.At(0, 1))
	Z := Zeros(4)
	assert.Equal(Te, 4, Z.NVecs())
	assert.Equal(Te, [3]float64{}, Z.Vec(3))
}

func TestBounds(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, -1, 5, 0, 3, -4, 2})
	require.NoError(Te, err)
	min, max := A.Bounds()
	assert.Equal(Te, [3]float64{-1, -4, 0}, min)
	assert.Equal(Te, [3]float64{3, 5, 3}, max)
	single, err := NewMatrix([]float64{1, -2, 3})
	require.NoError(Te, err)
	min, max = single.Bounds()
	assert.Equal(Te, min, max)
}
