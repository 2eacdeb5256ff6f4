//go:build windows

package webgpu

// workgroupDim is the number of threads per workgroup axis.
const workgroupDim = 16

// gemmShader computes C = alpha·op(A)·op(B) + beta·C for column-major
// f32 matrices with explicit leading dimensions, the exact contract of the
// engine interface. op(A) is M×K, op(B) is K×N, C is M×N.
const gemmShader = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> b: array<f32>;
@group(0) @binding(2) var<storage, read_write> c: array<f32>;

struct Params {
    m: u32,
    n: u32,
    k: u32,
    lda: u32,
    ldb: u32,
    ldc: u32,
    trans_a: u32,
    trans_b: u32,
    alpha: f32,
    beta: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    let j = global_id.y;

    if (i >= params.m || j >= params.n) {
        return;
    }

    var sum: f32 = 0.0;
    for (var kk: u32 = 0u; kk < params.k; kk = kk + 1u) {
        var av: f32;
        if (params.trans_a == 0u) {
            av = a[kk * params.lda + i];
        } else {
            av = a[i * params.lda + kk];
        }
        var bv: f32;
        if (params.trans_b == 0u) {
            bv = b[j * params.ldb + kk];
        } else {
            bv = b[kk * params.ldb + j];
        }
        sum = sum + av * bv;
    }

    let idx = j * params.ldc + i;
    c[idx] = params.alpha * sum + params.beta * c[idx];
}
`
