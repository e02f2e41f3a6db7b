// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture provides CPU-backed tile textures for tilegen.
//
// The tile generator uploads painted tiles through the gpucontext
// interfaces, so a host application can hand it real GPU textures.
// This package supplies the CPU side of that contract:
//
//   - PixmapTexture: an RGBA texture implementing gpucontext.TextureUpdater
//     and gpucontext.TextureRegionUpdater
//   - Grid: the textures of one tiled page, composited with x/image/draw
//   - PaintPlaceholder: the default texture shown before a tile is painted
//   - DrawLabel: a small fixed-font label for debugging tile placement
//
// PixmapTexture and Grid are safe for concurrent use: the generator's
// worker uploads while a renderer composites.
package texture
