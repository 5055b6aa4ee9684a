/*
 * errors.go, part of pmg.
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

package pmg

import (
	"errors"
	"fmt"
	"strings"
)

//Error is the error type for the pmg package.
type Error struct {
	message  string //One of the Err constants.
	detail   string
	deco     []string
	critical bool
}

//newError returns a critical error with the given message constant, caller and
//details, formatted as in fmt.Sprintf.
func newError(message, caller string, format string, args ...interface{}) *Error {
	return &Error{
		message:  message,
		detail:   fmt.Sprintf(format, args...),
		deco:     []string{caller},
		critical: true,
	}
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	if err.detail == "" {
		return err.message
	}
	return err.message + ": " + err.detail
}

//Message returns the error message without details.
func (err *Error) Message() string { return err.message }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Trace returns the chain of functions the error went through, innermost first.
func (err *Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

//errDecorate adds caller to the decoration of err, if it is a pmg error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Errorer
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

//IsMessage returns true if err is, or wraps, a pmg *Error with the
//given message constant.
func IsMessage(err error, message string) bool {
	var e *Error
	return errors.As(err, &e) && e.message == message
}

//Messages for the errors returned by the package.
const (
	ErrNotFilled             = "pmg: coefficient arrays have not been filled"
	ErrNotSolved             = "pmg: the potential has not been computed"
	ErrDestroyed             = "pmg: the problem has been destroyed"
	ErrBadDielectricMethod   = "pmg: invalid dielectric method"
	ErrBadSurfaceMethod      = "pmg: invalid surface method"
	ErrBadBoundaryCondition  = "pmg: invalid boundary condition"
	ErrFocusBoundary         = "pmg: boundary condition not appropriate for focusing"
	ErrNotContained          = "pmg: new mesh not contained in the old one"
	ErrBadParams             = "pmg: invalid parameters"
	ErrNoAtoms               = "pmg: the atomic model has no atoms"
	ErrPQRFormat             = "pmg: PQR format problem"
	ErrBadDataKind           = "pmg: invalid data kind"
	ErrMismatchedCoordinates = "pmg: the number of coordinates and atoms don't match"
)
