/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package session

import (
	"sync"

	"bennypowers.dev/aliaslink/document"
)

// Hover is an annotation shown when the pointer rests inside Range.
type Hover struct {
	Range document.Range `json:"range"`
	Text  string         `json:"text"`
}

// Link is a navigable range whose target is a file URI.
type Link struct {
	Range  document.Range `json:"range"`
	Target string         `json:"target"`
}

// HoverProvider holds the hovers of the most recent pass. It is safe for
// concurrent use.
type HoverProvider struct {
	mu     sync.RWMutex
	hovers []Hover
}

// NewHoverProvider creates an empty HoverProvider.
func NewHoverProvider() *HoverProvider {
	return &HoverProvider{}
}

// Reset drops all hovers.
func (p *HoverProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hovers = nil
}

// Add appends hovers.
func (p *HoverProvider) Add(hovers ...Hover) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hovers = append(p.hovers, hovers...)
}

// At returns the first hover whose range contains pos.
func (p *HoverProvider) At(pos document.Position) (Hover, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, h := range p.hovers {
		if h.Range.Contains(pos) {
			return h, true
		}
	}
	return Hover{}, false
}

// All returns a copy of the hovers in document order.
func (p *HoverProvider) All() []Hover {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Hover(nil), p.hovers...)
}

// LinkProvider holds the links of the most recent pass. It is safe for
// concurrent use.
type LinkProvider struct {
	mu    sync.RWMutex
	links []Link
}

// NewLinkProvider creates an empty LinkProvider.
func NewLinkProvider() *LinkProvider {
	return &LinkProvider{}
}

// Reset drops all links.
func (p *LinkProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.links = nil
}

// Add appends links.
func (p *LinkProvider) Add(links ...Link) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.links = append(p.links, links...)
}

// All returns a copy of the links in document order.
func (p *LinkProvider) All() []Link {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Link(nil), p.links...)
}
