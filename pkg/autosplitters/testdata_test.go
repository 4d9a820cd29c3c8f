// Zaparoo LiveSplit
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo LiveSplit.
//
// Zaparoo LiveSplit is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo LiveSplit is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo LiveSplit.  If not, see <http://www.gnu.org/licenses/>.

package autosplitters

const testList = `<?xml version="1.0" encoding="utf-8"?>
<AutoSplitters>
  <AutoSplitter>
    <Games>
      <Game>Foo</Game>
      <Game>Foo: Remastered</Game>
    </Games>
    <URLs>
      <URL>https://example.com/foo.wasm</URL>
    </URLs>
    <Type>Component</Type>
    <ScriptType>AutoSplittingRuntime</ScriptType>
    <Description>Autosplitter for Foo</Description>
    <Website>https://example.com/foo</Website>
  </AutoSplitter>
  <AutoSplitter>
    <Games>
      <Game>Legacy Game</Game>
    </Games>
    <URLs>
      <URL>https://example.com/legacy.asl</URL>
    </URLs>
    <Type>Script</Type>
    <Description>ASL script</Description>
  </AutoSplitter>
  <AutoSplitter>
    <Games>
      <Game>Foo</Game>
    </Games>
    <URLs>
      <URL>https://example.com/second.wasm</URL>
    </URLs>
    <ScriptType>AutoSplittingRuntime</ScriptType>
    <Description>Shadowed entry</Description>
  </AutoSplitter>
</AutoSplitters>`
