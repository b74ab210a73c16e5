package graphics

// Chunk shader: interleaved position, normal, RGBA. Lighting is a single
// directional sun scaled by the daylight uniform.
const chunkVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aColor;

uniform mat4 view;
uniform mat4 proj;

out vec3 vNormal;
out vec4 vColor;
out float vDepth;

void main() {
    vec4 eye = view * vec4(aPos, 1.0);
    vNormal = aNormal;
    vColor = aColor;
    vDepth = -eye.z;
    gl_Position = proj * eye;
}
`

const chunkFragSrc = `#version 410 core

uniform bool lighting;
uniform float daylight;
uniform vec3 sunDir;
uniform vec3 fogColor;
uniform float fogDistance;

in vec3 vNormal;
in vec4 vColor;
in float vDepth;
out vec4 FragColor;

void main() {
    vec3 rgb = vColor.rgb;
    if (lighting) {
        float diffuse = max(dot(normalize(vNormal), sunDir), 0.0);
        float light = 0.25 + 0.75 * daylight * (0.4 + 0.6 * diffuse);
        rgb *= light;
    }
    float fog = clamp((vDepth - fogDistance * 0.6) / (fogDistance * 0.4), 0.0, 1.0);
    FragColor = vec4(mix(rgb, fogColor, fog), vColor.a);
}
`

// Sky shader: a cube around the viewer, colored by view elevation.
const skyVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;

uniform mat4 view;
uniform mat4 proj;

out vec3 vDir;

void main() {
    vDir = aPos;
    vec4 pos = proj * mat4(mat3(view)) * vec4(aPos, 1.0);
    gl_Position = pos.xyww;
}
`

const skyFragSrc = `#version 410 core

uniform vec3 zenith;
uniform vec3 horizon;

in vec3 vDir;
out vec4 FragColor;

void main() {
    float h = clamp(normalize(vDir).y, 0.0, 1.0);
    FragColor = vec4(mix(horizon, zenith, pow(h, 0.6)), 1.0);
}
`

// Line shader for debug volumes.
const lineVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

void main() {
    gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const lineFragSrc = `#version 410 core

uniform vec3 color;
out vec4 FragColor;

void main() {
    FragColor = vec4(color, 1.0);
}
`

// Screen space shader for the crosshair and the scene tint.
const screenVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;

uniform float aspectRatio;

void main() {
    gl_Position = vec4(aPos.x / aspectRatio, aPos.y, 0.0, 1.0);
}
`

const screenFragSrc = `#version 410 core

uniform vec4 color;
out vec4 FragColor;

void main() {
    FragColor = color;
}
`
