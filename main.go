/*
 * This file is part of the LIDAR Point Cloud Viewer distribution (https://github.com/ecopia-map/pointcloud_viewer).
 * Copyright (c) 2026 The pointcloud_viewer Authors
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/ecopia-map/pointcloud_viewer/cmd"
)

const VERSION = "0.1.0"

const logo = `
                      _                       
 _ __   ___ __   _(_) _____      _____ _ __ 
| '_ \ / __|\ \ / / |/ _ \ \ /\ / / _ \ '__|
| |_) | (__  \ V /| |  __/\ V  V /  __/ |   
| .__/ \___|  \_/ |_|\___| \_/\_/ \___|_|   
|_|  A LIDAR point cloud viewer core written in golang
     Copyright YYYY - The pointcloud_viewer Authors
`

func main() {
	cmd.Execute(VERSION, strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}
