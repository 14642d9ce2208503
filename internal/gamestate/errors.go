// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gamestate

import "errors"

// ErrInvalidSnapshot is returned when a JSON game-state snapshot fails to
// parse or validate.
var ErrInvalidSnapshot = errors.New("gamestate: invalid snapshot")
