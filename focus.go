/*
 * focus.go, part of pmg.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package pmg

import (
	"github.com/rmera/pmg/mesh"
	"github.com/sirupsen/logrus"
)

//NewFocus builds a problem on the mesh given by params, which must lie inside the
//mesh of old, a solved problem. The boundary values of the new problem are
//interpolated from the potential of old, and the energy of old outside the
//new mesh is kept as the external energy of the new problem.
//old is destroyed when NewFocus succeeds. If it fails, old is left untouched.
//The boundary condition in params is replaced by Focus.
func NewFocus(params *Params, pbe *PBE, old *Problem) (*Problem, error) {
	if old == nil || old.destroyed {
		return nil, newError(ErrDestroyed, "NewFocus", "no coarse problem to focus from")
	}
	if err := old.check("NewFocus", true); err != nil {
		return nil, err
	}
	if params == nil {
		params = DefaultParams()
	}
	p := *params
	log := p.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if p.Boundary != Focus {
		log.WithField("bc", p.Boundary.String()).Warn("boundary condition reset to focus")
		p.Boundary = Focus
	}
	g, err := p.Geometry()
	if err != nil {
		return nil, errDecorate(err, "NewFocus")
	}
	if !old.geom.Contains(g, mesh.Tolerance) {
		log.WithFields(logrus.Fields{
			"oldMin": old.geom.Mins(), "oldMax": old.geom.Maxs(),
			"newMin": g.Mins(), "newMax": g.Maxs(),
		}).Error("focusing mesh not contained in the coarse mesh")
		return nil, newError(ErrNotContained, "NewFocus", "old mesh from %v to %v, new mesh from %v to %v",
			old.geom.Mins(), old.geom.Maxs(), g.Mins(), g.Maxs())
	}
	P, err := newProblem(&p, pbe)
	if err != nil {
		return nil, errDecorate(err, "NewFocus")
	}
	P.focusBoundary(old)
	P.extEnergy, err = old.externalEnergy(g.Box())
	if err != nil {
		return nil, errDecorate(err, "NewFocus")
	}
	P.log.WithField("external", P.extEnergy).Debug("energy outside the focused mesh")
	old.Destroy()
	return P, nil
}

//focusBoundary interpolates the potential of old on the faces of P.
//Face points are on the old mesh up to rounding errors, so the stencil is clamped.
func (P *Problem) focusBoundary(old *Problem) {
	g := P.geom
	n := g.N
	value := func(i, j, k int) float64 {
		return old.geom.ClampedStencilAt(g.Point(i, j, k)).Interpolate(old.geom, old.u)
	}
	for k := 0; k < n[mesh.Z]; k++ {
		for j := 0; j < n[mesh.Y]; j++ {
			*P.bnd.XFace(j, k) = mesh.Face{Lo: value(0, j, k), Hi: value(n[mesh.X]-1, j, k)}
		}
	}
	for k := 0; k < n[mesh.Z]; k++ {
		for i := 0; i < n[mesh.X]; i++ {
			*P.bnd.YFace(i, k) = mesh.Face{Lo: value(i, 0, k), Hi: value(i, n[mesh.Y]-1, k)}
		}
	}
	for j := 0; j < n[mesh.Y]; j++ {
		for i := 0; i < n[mesh.X]; i++ {
			*P.bnd.ZFace(i, j) = mesh.Face{Lo: value(i, j, 0), Hi: value(i, j, n[mesh.Z]-1)}
		}
	}
}

//externalEnergy returns the energy of P restricted to the points outside box,
//including its own external energy. The partition is cleared afterwards.
func (P *Problem) externalEnergy(box mesh.Box) (float64, error) {
	if err := P.SetPartition(box); err != nil {
		return 0, errDecorate(err, "externalEnergy")
	}
	P.invertPartition()
	e, err := P.Energy(true)
	P.ClearPartition()
	return e, errDecorate(err, "externalEnergy")
}
