/*
 * gdiface - Godot script interface conformance checker
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package resolver

import (
	"github.com/onflow/gdiface/static"
)

const rootEngineClassName = "Object"

// engineClassNameExceptions maps framework class names,
// which follow the naming conventions of the static side,
// to the class names used by the engine.
var engineClassNameExceptions = map[string]string{
	static.RootObjectName: rootEngineClassName,

	"AesContext":              "AESContext",
	"CpuParticles2D":          "CPUParticles2D",
	"CpuParticles3D":          "CPUParticles3D",
	"CsgBox3D":                "CSGBox3D",
	"CsgCombiner3D":           "CSGCombiner3D",
	"CsgCylinder3D":           "CSGCylinder3D",
	"CsgMesh3D":               "CSGMesh3D",
	"CsgPolygon3D":            "CSGPolygon3D",
	"CsgPrimitive3D":          "CSGPrimitive3D",
	"CsgShape3D":              "CSGShape3D",
	"CsgSphere3D":             "CSGSphere3D",
	"CsgTorus3D":              "CSGTorus3D",
	"DtlsServer":              "DTLSServer",
	"GltfAccessor":            "GLTFAccessor",
	"GltfAnimation":           "GLTFAnimation",
	"GltfBufferView":          "GLTFBufferView",
	"GltfCamera":              "GLTFCamera",
	"GltfDocument":            "GLTFDocument",
	"GltfLight":               "GLTFLight",
	"GltfMesh":                "GLTFMesh",
	"GltfNode":                "GLTFNode",
	"GltfSkeleton":            "GLTFSkeleton",
	"GltfSkin":                "GLTFSkin",
	"GltfState":               "GLTFState",
	"GltfTexture":             "GLTFTexture",
	"GpuParticles2D":          "GPUParticles2D",
	"GpuParticles3D":          "GPUParticles3D",
	"GpuParticlesAttractor3D": "GPUParticlesAttractor3D",
	"GpuParticlesCollision3D": "GPUParticlesCollision3D",
	"HmacContext":             "HMACContext",
	"HttpClient":              "HTTPClient",
	"HttpRequest":             "HTTPRequest",
	"Ip":                      "IP",
	"Json":                    "JSON",
	"JsonRpc":                 "JSONRPC",
	"Os":                      "OS",
	"PacketPeerDtls":          "PacketPeerDTLS",
	"PacketPeerUdp":           "PacketPeerUDP",
	"StreamPeerTcp":           "StreamPeerTCP",
	"StreamPeerTls":           "StreamPeerTLS",
	"TcpServer":               "TCPServer",
	"TlsOptions":              "TLSOptions",
	"UdpServer":               "UDPServer",
	"Upnp":                    "UPNP",
	"UpnpDevice":              "UPNPDevice",
	"WebRtcDataChannel":       "WebRTCDataChannel",
	"WebRtcPeerConnection":    "WebRTCPeerConnection",
	"XrCamera3D":              "XRCamera3D",
	"XrController3D":          "XRController3D",
	"XrInterface":             "XRInterface",
	"XrOrigin3D":              "XROrigin3D",
	"XrServer":                "XRServer",
}

// NearestFrameworkAncestorName returns the engine class name of the nearest framework class
// the given type is or derives from.
// If there is none, the type's own name is used.
func (r *Resolver) NearestFrameworkAncestorName(typ *static.NamedType) string {
	name := typ.Name

	visited := map[*static.NamedType]struct{}{}
	for current := typ; current != nil; current = current.Base {
		if _, ok := visited[current]; ok {
			// the base chain is cyclic
			name = typ.Name
			break
		}
		visited[current] = struct{}{}

		if current.Namespace == r.config.FrameworkNamespace {
			name = current.Name
			break
		}
	}

	return r.engineClassName(name)
}

func (r *Resolver) engineClassName(name string) string {
	if exception, ok := r.nameExceptions[name]; ok {
		return exception
	}
	return name
}

// derivesFromRootObject reports whether the type is or derives from the framework's root object class.
func (r *Resolver) derivesFromRootObject(typ *static.NamedType) bool {
	visited := map[*static.NamedType]struct{}{}
	for current := typ; current != nil; current = current.Base {
		if _, ok := visited[current]; ok {
			return false
		}
		visited[current] = struct{}{}

		if current.Namespace == r.config.FrameworkNamespace &&
			current.Name == r.config.RootObjectName {

			return true
		}
	}
	return false
}
