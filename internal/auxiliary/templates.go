package auxiliary

// Generic sources for the auxiliary routines. Each template is kept
// independently compilable as C++ so the numeric kernels can be unit
// tested outside generated code; the sanitizer strips the scaffolding
// (template declarations, defines, inline markers, comments) and rewrites
// type placeholders and declared symbols per instantiation.

const copySrc = `// SYMBOL "casadi_copy"
template<typename T1>
void casadi_copy(const T1* x, int n, T1* y) {
  int i;
  if (y) {
    if (x) {
      for (i=0; i<n; ++i) *y++ = *x++;
    } else {
      for (i=0; i<n; ++i) *y++ = 0;
    }
  }
}
`

const swapSrc = `// SYMBOL "casadi_swap"
template<typename T1>
void casadi_swap(int n, T1* x, int inc_x, T1* y, int inc_y) {
  T1 t;
  int i;
  for (i=0; i<n; ++i) {
    t = *x;
    *x = *y;
    *y = t;
    x += inc_x;
    y += inc_y;
  }
}
`

const scalSrc = `// SYMBOL "casadi_scal"
template<typename T1>
void casadi_scal(int n, T1 alpha, T1* x) {
  int i;
  if (!x) return;
  for (i=0; i<n; ++i) *x++ *= alpha;
}
`

const axpySrc = `// SYMBOL "casadi_axpy"
template<typename T1>
void casadi_axpy(int n, T1 alpha, const T1* x, T1* y) {
  int i;
  if (!x || !y) return;
  for (i=0; i<n; ++i) *y++ += alpha**x++;
}
`

const dotSrc = `// SYMBOL "casadi_dot"
template<typename T1>
T1 casadi_dot(int n, const T1* x, const T1* y) {
  T1 r = 0;
  int i;
  for (i=0; i<n; ++i) r += *x++**y++;
  return r;
}
`

const bilinSrc = `// SYMBOL "casadi_bilin"
template<typename T1>
T1 casadi_bilin(const T1* A, const int* sp_A, const T1* x, const T1* y) {
  // Get sparsity
  int ncol_A = sp_A[1];
  const int *colind_A = sp_A+2, *row_A = sp_A+ncol_A+3;
  // Return value
  T1 ret = 0;
  int cc, rr;
  for (cc=0; cc<ncol_A; ++cc) {
    for (rr=colind_A[cc]; rr<colind_A[cc+1]; ++rr) {
      ret += x[row_A[rr]]*A[rr]*y[cc];
    }
  }
  return ret;
}
`

const rank1Src = `// SYMBOL "casadi_rank1"
template<typename T1>
void casadi_rank1(T1* A, const int* sp_A, T1 alpha, const T1* x, const T1* y) {
  // Get sparsity
  int ncol_A = sp_A[1];
  const int *colind_A = sp_A+2, *row_A = sp_A+ncol_A+3;
  int cc, rr;
  for (cc=0; cc<ncol_A; ++cc) {
    for (rr=colind_A[cc]; rr<colind_A[cc+1]; ++rr) {
      A[rr] += alpha*x[row_A[rr]]*y[cc];
    }
  }
}
`

const iamaxSrc = `// SYMBOL "casadi_iamax"
template<typename T1>
int casadi_iamax(int n, const T1* x, int inc_x) {
  T1 t, largest_value = -1;
  int largest_index = -1;
  int i;
  for (i=0; i<n; ++i) {
    t = fabs(*x);
    x += inc_x;
    if (t>largest_value) {
      largest_value = t;
      largest_index = i;
    }
  }
  return largest_index;
}
`

const norm1Src = `// SYMBOL "casadi_norm_1"
template<typename T1>
T1 casadi_norm_1(int n, const T1* x) {
  T1 ret = 0;
  int i;
  if (x) {
    for (i=0; i<n; ++i) ret += fabs(*x++);
  }
  return ret;
}
`

const norm2Src = `// SYMBOL "casadi_norm_2"
template<typename T1>
T1 casadi_norm_2(int n, const T1* x) {
  T1 ret = 0;
  int i;
  for (i=0; i<n; ++i) ret += x[i]*x[i];
  return sqrt(ret);
}
`

const normInfSrc = `// SYMBOL "casadi_norm_inf"
// C-REPLACE "std::max" "fmax"
template<typename T1>
T1 casadi_norm_inf(int n, const T1* x) {
  T1 ret = 0;
  int i;
  for (i=0; i<n; ++i) ret = std::max(ret, fabs(x[i]));
  return ret;
}
`

const fillSrc = `// SYMBOL "casadi_fill"
template<typename T1>
void casadi_fill(T1* x, int n, T1 alpha) {
  int i;
  if (x) {
    for (i=0; i<n; ++i) *x++ = alpha;
  }
}
`

const mvSrc = `// SYMBOL "casadi_mv"
template<typename T1>
void casadi_mv(const T1* x, const int* sp_x, const T1* y, T1* z, int tr) {
  // Get sparsity
  int ncol_x = sp_x[1];
  const int *colind_x = sp_x+2, *row_x = sp_x+ncol_x+3;
  int i, el;
  if (!x || !y || !z) return;
  if (tr) {
    // loop over the columns of x
    for (i=0; i<ncol_x; ++i) {
      for (el=colind_x[i]; el<colind_x[i+1]; ++el) {
        z[i] += x[el] * y[row_x[el]];
      }
    }
  } else {
    // loop over the columns of x
    for (i=0; i<ncol_x; ++i) {
      for (el=colind_x[i]; el<colind_x[i+1]; ++el) {
        z[row_x[el]] += x[el] * y[i];
      }
    }
  }
}
`

const mvDenseSrc = `// SYMBOL "casadi_mv_dense"
template<typename T1>
void casadi_mv_dense(const T1* x, int nrow_x, int ncol_x, const T1* y, T1* z, int tr) {
  int i, j;
  if (!x || !y || !z) return;
  if (tr) {
    for (i=0; i<ncol_x; ++i) {
      for (j=0; j<nrow_x; ++j) {
        z[i] += x[i*nrow_x+j]*y[j];
      }
    }
  } else {
    for (i=0; i<ncol_x; ++i) {
      for (j=0; j<nrow_x; ++j) {
        z[j] += x[i*nrow_x+j]*y[i];
      }
    }
  }
}
`

const mtimesSrc = `// SYMBOL "casadi_mtimes"
template<typename T1>
void casadi_mtimes(const T1* x, const int* sp_x, const T1* y, const int* sp_y, T1* z, const int* sp_z, T1* w, int tr) {
  int cc, kk, kk1, rr;
  // Get sparsities
  int ncol_x = sp_x[1];
  const int *colind_x = sp_x+2, *row_x = sp_x+ncol_x+3;
  int ncol_y = sp_y[1];
  const int *colind_y = sp_y+2, *row_y = sp_y+ncol_y+3;
  int ncol_z = sp_z[1];
  const int *colind_z = sp_z+2, *row_z = sp_z+ncol_z+3;
  if (tr) {
    // loop over the columns of y and z
    for (cc=0; cc<ncol_z; ++cc) {
      // get the dense column of y
      for (kk=colind_y[cc]; kk<colind_y[cc+1]; ++kk) {
        w[row_y[kk]] = y[kk];
      }
      // loop over the nonzeros of z
      for (kk=colind_z[cc]; kk<colind_z[cc+1]; ++kk) {
        rr = row_z[kk];
        // loop over corresponding columns of x
        for (kk1=colind_x[rr]; kk1<colind_x[rr+1]; ++kk1) {
          z[kk] += x[kk1] * w[row_x[kk1]];
        }
      }
    }
  } else {
    // loop over the columns of y and z
    for (cc=0; cc<ncol_y; ++cc) {
      // get the dense column of z
      for (kk=colind_z[cc]; kk<colind_z[cc+1]; ++kk) {
        w[row_z[kk]] = z[kk];
      }
      // loop over the nonzeros of y
      for (kk=colind_y[cc]; kk<colind_y[cc+1]; ++kk) {
        rr = row_y[kk];
        // loop over corresponding columns of x
        for (kk1=colind_x[rr]; kk1<colind_x[rr+1]; ++kk1) {
          w[row_x[kk1]] += x[kk1] * y[kk];
        }
      }
      // get the sparse column of z
      for (kk=colind_z[cc]; kk<colind_z[cc+1]; ++kk) {
        z[kk] = w[row_z[kk]];
      }
    }
  }
}
`

const projectSrc = `// SYMBOL "casadi_project"
template<typename T1>
void casadi_project(const T1* x, const int* sp_x, T1* y, const int* sp_y, T1* w) {
  // Get sparsities
  int ncol_x = sp_x[1];
  const int *colind_x = sp_x+2, *row_x = sp_x+ncol_x+3;
  int ncol_y = sp_y[1];
  const int *colind_y = sp_y+2, *row_y = sp_y+ncol_y+3;
  int col, el;
  // Loop over columns of x and y
  for (col=0; col<ncol_x; ++col) {
    // Zero out requested entries in y
    for (el=colind_y[col]; el<colind_y[col+1]; ++el) w[row_y[el]] = 0;
    // Set x entries
    for (el=colind_x[col]; el<colind_x[col+1]; ++el) w[row_x[el]] = x[el];
    // Retrieve requested entries in y
    for (el=colind_y[col]; el<colind_y[col+1]; ++el) y[el] = w[row_y[el]];
  }
}
`

const densifySrc = `// SYMBOL "casadi_densify"
template<typename T1, typename T2>
void casadi_densify(const T1* x, const int* sp_x, T2* y, int tr) {
  int nrow_x, ncol_x, i, el;
  const int *colind_x, *row_x;
  // Quick return - output ignored
  if (!y) return;
  nrow_x = sp_x[0];
  ncol_x = sp_x[1];
  colind_x = sp_x+2;
  row_x = sp_x+ncol_x+3;
  // Zero out return value
  casadi_fill(y, nrow_x*ncol_x, CASADI_CAST(T2, 0));
  // Quick return - input is zero
  if (!x) return;
  // Copy nonzeros
  if (tr) {
    for (i=0; i<ncol_x; ++i) {
      for (el=colind_x[i]; el<colind_x[i+1]; ++el) {
        y[i + row_x[el]*ncol_x] = CASADI_CAST(T2, *x++);
      }
    }
  } else {
    for (i=0; i<ncol_x; ++i) {
      for (el=colind_x[i]; el<colind_x[i+1]; ++el) {
        y[row_x[el]] = CASADI_CAST(T2, *x++);
      }
      y += nrow_x;
    }
  }
}
`

const transSrc = `// SYMBOL "casadi_trans"
template<typename T1>
void casadi_trans(const T1* x, const int* sp_x, T1* y, const int* sp_y, int* tmp) {
  int ncol_x = sp_x[1];
  int nnz_x = sp_x[2 + ncol_x];
  const int* row_x = sp_x + 2 + ncol_x+1;
  int ncol_y = sp_y[1];
  const int* colind_y = sp_y+2;
  int k;
  for (k=0; k<ncol_y; ++k) tmp[k] = colind_y[k];
  for (k=0; k<nnz_x; ++k) {
    y[tmp[row_x[k]]++] = x[k];
  }
}
`

const flipSrc = `// SYMBOL "casadi_flip"
inline
int casadi_flip(int* corner, int ndim) {
  int i;
  for (i=0; i<ndim; ++i) {
    if (corner[i]) {
      corner[i]=0;
    } else {
      corner[i]=1;
      return 1;
    }
  }
  return 0;
}
`

const lowSrc = `// SYMBOL "casadi_low"
template<typename T1>
int casadi_low(T1 x, const T1* grid, int ng, int lookup_mode) {
  int i, ret;
  if (lookup_mode) {
    // Linear scaling of the grid interval
    T1 g0 = grid[0];
    ret = (int) ((x-g0)*(ng-1)/(grid[ng-1]-g0));
    if (ret<0) ret=0;
    if (ret>ng-2) ret=ng-2;
    return ret;
  } else {
    for (i=0; i<ng-2; ++i) {
      if (x < grid[i+1]) break;
    }
    return i;
  }
}
`

const interpnWeightsSrc = `// SYMBOL "casadi_interpn_weights"
template<typename T1>
void casadi_interpn_weights(int ndim, const T1* grid, const int* offset, const T1* x, T1* alpha, int* index, const int* lookup_mode) {
  // Left index and fraction of interval
  int i, j, ng;
  T1 xi;
  const T1* g;
  for (i=0; i<ndim; ++i) {
    // Grid point
    xi = x ? x[i] : 0;
    // Grid
    g = grid + offset[i];
    ng = offset[i+1]-offset[i];
    // Find left index
    j = index[i] = casadi_low(xi, g, ng, lookup_mode[i]);
    // Get interpolation/extrapolation alpha
    alpha[i] = (xi-g[j])/(g[j+1]-g[j]);
  }
}
`

const interpnInterpolateSrc = `// SYMBOL "casadi_interpn_interpolate"
template<typename T1>
T1 casadi_interpn_interpolate(int ndim, const int* offset, const T1* values, const T1* alpha, const int* index, const int* corner, T1* coeff) {
  // Get weight and value for corner
  T1 c = 1;
  int ld = 1;
  int i;
  for (i=0; i<ndim; ++i) {
    if (coeff) *coeff++ = c;
    if (corner[i]) {
      c *= alpha[i];
    } else {
      c *= 1-alpha[i];
    }
    values += (index[i]+corner[i])*ld;
    ld *= offset[i+1]-offset[i];
  }
  if (coeff) {
    return *values;
  } else {
    return c**values;
  }
}
`

const interpnSrc = `// SYMBOL "casadi_interpn"
#define casadi_fill_int casadi_fill
template<typename T1>
T1 casadi_interpn(int ndim, const T1* grid, const int* offset, const T1* values, const T1* x, const int* lookup_mode, int* iw, T1* w) {
  // Work vectors
  T1* alpha = w; w += ndim;
  int* index = iw; iw += ndim;
  int* corner = iw; iw += ndim;
  T1 ret = 0;
  // Left index and fraction of interval
  casadi_interpn_weights(ndim, grid, offset, x, alpha, index, lookup_mode);
  // Loop over all corners, add contribution to output
  casadi_fill_int(corner, ndim, 0);
  do {
    // Get coefficients
    ret += casadi_interpn_interpolate(ndim, offset, values, alpha, index, corner, 0);
  } while (casadi_flip(corner, ndim));
  return ret;
}
#undef casadi_fill_int
`

const interpnGradSrc = `// SYMBOL "casadi_interpn_grad"
#define casadi_fill_int casadi_fill
template<typename T1>
void casadi_interpn_grad(T1* grad, int ndim, const T1* grid, const int* offset, const T1* values, const T1* x, const int* lookup_mode, int* iw, T1* w) {
  // Quick return
  if (!grad) return;
  // Work vectors
  T1* alpha = w; w += ndim;
  T1* coeff = w; w += ndim;
  int* index = iw; iw += ndim;
  int* corner = iw; iw += ndim;
  T1 v;
  int i, j;
  const T1* g;
  // Left index and fraction of interval
  casadi_interpn_weights(ndim, grid, offset, x, alpha, index, lookup_mode);
  // Loop over all corners, add contribution to gradient
  casadi_fill_int(corner, ndim, 0);
  casadi_fill(grad, ndim, 0.);
  do {
    // Get coefficients
    v = casadi_interpn_interpolate(ndim, offset, values, alpha, index, corner, coeff);
    // Propagate to alpha
    for (i=ndim-1; i>=0; --i) {
      if (corner[i]) {
        grad[i] += v*coeff[i];
        v *= alpha[i];
      } else {
        grad[i] -= v*coeff[i];
        v *= 1-alpha[i];
      }
    }
  } while (casadi_flip(corner, ndim));
  // Propagate to x
  for (i=0; i<ndim; ++i) {
    g = grid + offset[i];
    j = index[i];
    grad[i] /= g[j+1]-g[j];
  }
}
#undef casadi_fill_int
`

const deBoorSrc = `// SYMBOL "casadi_de_boor"
template<typename T1>
void casadi_de_boor(T1 x, const T1* knots, int n_knots, int degree, T1* boor) {
  // Length of boor: n_knots-1
  int d, i;
  T1 b, bottom;
  for (d=1; d<degree+1; ++d) {
    for (i=0; i<n_knots-d-1; ++i) {
      b = 0;
      bottom = knots[i + d] - knots[i];
      if (bottom) b = (x - knots[i]) * boor[i] / bottom;
      bottom = knots[i + d + 1] - knots[i + 1];
      if (bottom) b += (knots[i + d + 1] - x) * boor[i + 1] / bottom;
      boor[i] = b;
    }
  }
}
`

const ndBoorEvalSrc = `// SYMBOL "casadi_nd_boor_eval"
#define casadi_fill_int casadi_fill
template<typename T1>
void casadi_nd_boor_eval(T1* ret, int n_dims, const T1* all_knots, const int* offset, const int* all_degree, const int* strides, const T1* c, int m, const T1* all_x, const int* lookup_mode, int* iw, T1* w) {
  // Work vectors
  int* boor_offset = iw; iw += n_dims+1;
  int* starts = iw; iw += n_dims;
  int* index = iw; iw += n_dims;
  int* coeff_offset = iw;
  T1* cumprod = w; w += n_dims+1;
  T1* all_boor = w;
  int n_iter = 1;
  int i, j, pivot, nn;
  boor_offset[0] = 0;
  cumprod[n_dims] = 1;
  coeff_offset[n_dims] = 0;
  for (i=0; i<n_dims; ++i) {
    // Dimension specifics
    T1* boor = all_boor + boor_offset[i];
    int degree = all_degree[i];
    const T1* knots = all_knots + offset[i];
    int n_knots = offset[i+1] - offset[i];
    int n_b = n_knots - degree - 1;
    T1 x = all_x[i];
    // Find the knot interval and clip to the valid basis range
    int L = casadi_low(x, knots+degree, n_knots-2*degree, lookup_mode[i]);
    int start = L;
    if (start>n_b-degree-1) start = n_b-degree-1;
    starts[i] = start;
    // Pick the active basis function
    casadi_fill(boor, 2*degree+1, 0.);
    if (x>=knots[0] && x<=knots[n_knots-1]) {
      if (x==knots[1]) {
        casadi_fill(boor, degree+1, 1.);
      } else if (x==knots[n_knots-2]) {
        boor[degree] = 1;
      } else if (knots[L+degree]==x) {
        boor[degree-1] = 1;
      } else {
        boor[degree] = 1;
      }
    }
    casadi_de_boor(x, knots+start, 2*degree+2, degree, boor);
    n_iter *= degree+1;
    boor_offset[i+1] = boor_offset[i] + degree+1;
  }
  // Prepare cumulative product
  casadi_fill_int(index, n_dims, 0);
  for (i=n_dims-1; i>=0; --i) {
    cumprod[i] = all_boor[boor_offset[i]]*cumprod[i+1];
    coeff_offset[i] = starts[i]*strides[i]+coeff_offset[i+1];
  }
  for (pivot=n_dims-1, nn=0; nn<n_iter; ++nn) {
    // Accumulate the weighted coefficients
    for (j=0; j<m; ++j) {
      ret[j] += c[m*coeff_offset[0]+j]*cumprod[0];
    }
    // Increment the multi-index
    pivot = n_dims-1;
    index[pivot]++;
    while (index[pivot]==boor_offset[pivot+1]-boor_offset[pivot]) {
      index[pivot] = 0;
      if (pivot==0) break;
      pivot--;
      index[pivot]++;
    }
    // Refresh invalidated products and offsets
    for (i=pivot; i<n_dims; ++i) {
      cumprod[i] = all_boor[boor_offset[i]+index[i]]*cumprod[i+1];
      coeff_offset[i] = (starts[i]+index[i])*strides[i]+coeff_offset[i+1];
    }
  }
}
#undef casadi_fill_int
`

const toMexSrc = `// SYMBOL "casadi_to_mex"
template<typename T1>
mxArray* casadi_to_mex(const int* sp, const T1* x) {
  int nrow = *sp++, ncol = *sp++, nnz = sp[ncol];
  mxArray* p = mxCreateSparse(nrow, ncol, nnz, mxREAL);
  int i;
  mwIndex* j;
  double* d = (double*)mxGetData(p);
  for (i=0; i<nnz; ++i) d[i] = to_double(x[i]);
  j = mxGetJc(p);
  for (i=0; i<=ncol; ++i) j[i] = sp[i];
  j = mxGetIr(p);
  for (i=0; i<nnz; ++i) j[i] = sp[ncol+1+i];
  return p;
}
`

const fromMexSrc = `// SYMBOL "casadi_from_mex"
// C-REPLACE "bool" "int"
// C-REPLACE "false" "0"
// C-REPLACE "true" "1"
template<typename T1>
T1* casadi_from_mex(const mxArray* p, T1* y, const int* sp, T1* w) {
  if (!mxIsDouble(p) || mxGetNumberOfDimensions(p)!=2)
    mexErrMsgIdAndTxt("Casadi:RuntimeError", "\"from_mex\" failed: Not a two-dimensional matrix of double precision.");
  int nrow = *sp++, ncol = *sp++, nnz = sp[ncol];
  const int *colind = sp, *row = sp+ncol+1;
  size_t p_nrow = mxGetM(p), p_ncol = mxGetN(p);
  const double* p_data = (const double*)mxGetData(p);
  bool is_sparse = mxIsSparse(p);
  mwIndex *Jc = 0, *Ir = 0;
  int c, k;
  if (is_sparse) {
    Jc = mxGetJc(p);
    Ir = mxGetIr(p);
  }
  if (p_nrow==1 && p_ncol==1) {
    // Scalar argument - assign to all nonzeros
    double v = is_sparse && Jc[1]==0 ? 0 : *p_data;
    casadi_fill(y, nnz, v);
  } else if ((int) p_nrow==nrow && (int) p_ncol==ncol) {
    if (is_sparse) {
      // Sparse input - project each column onto the requested pattern
      for (c=0; c<ncol; ++c) {
        for (k=colind[c]; k<colind[c+1]; ++k) w[row[k]] = 0;
        for (k=Jc[c]; (mwIndex) k<Jc[c+1]; ++k) w[Ir[k]] = p_data[k];
        for (k=colind[c]; k<colind[c+1]; ++k) y[k] = w[row[k]];
      }
    } else {
      // Dense input - pick requested entries
      for (c=0; c<ncol; ++c) {
        for (k=colind[c]; k<colind[c+1]; ++k) {
          y[k] = p_data[row[k]+c*p_nrow];
        }
      }
    }
  } else {
    mexErrMsgIdAndTxt("Casadi:RuntimeError", "\"from_mex\" failed: Dimension mismatch.");
  }
  return y;
}
`

const finiteDiffSrc = `// SYMBOL "casadi_finite_diff"
template<typename T1>
void casadi_finite_diff(const T1* yf, const T1* yb, T1* J, T1 h, int n, int central) {
  // Difference quotient over one perturbed evaluation pair
  T1 hinv = central ? 1/(2*h) : 1/h;
  int i;
  for (i=0; i<n; ++i) J[i] = hinv*(yf[i]-yb[i]);
}
`
