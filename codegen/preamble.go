package codegen

// preamble is the fixed header every generated translation unit opens
// with: the host's public C API, the auxiliary library, and the internal
// headers the generated code reaches into directly for tagged-value
// access, table operations, and GC barriers.
// PALLENE_* helper macros wrap a handful of multi-step host operations
// (GC-barriered globals-table stores, string comparison and pushing,
// table argument checks) the way pallene_core.h does in the original runtime, so
// the per-expression emitters in expr.go stay one call each instead of
// repeating the same three-line dance at every use site.
const preamble = `/* generated by palc -- do not edit by hand */

#include "lua.h"
#include "lauxlib.h"
#include "lualib.h"

#include "lapi.h"
#include "lfunc.h"
#include "lgc.h"
#include "lobject.h"
#include "lstate.h"
#include "lstring.h"
#include "ltable.h"
#include "lvm.h"

#include <math.h>
#include <stdlib.h>

#if defined(__clang__)
#pragma clang diagnostic ignored "-Wparentheses-equality"
#endif

#define PALLENE_TAG_STR LUA_VTSHRSTR
#define PALLENE_TAG_TAB LUA_VTABLE

/* Stores a GC value into globals table slot idx and re-marks the table if
   the incoming value is younger than the table itself (the same
   write-barrier dance luaH_setint callers are expected to do by hand). */
#define PALLENE_SET_GLOBAL_OBJ(L, g, idx, gcval, tag) \
  do { \
    TValue *_slot = &(g)->array[idx]; \
    _slot->value_.gc = (gcval); \
    _slot->tt_ = (tag) | BIT_ISCOLLECTABLE; \
    luaC_barrierback((L), obj2gco(g), _slot); \
  } while (0)

#define PALLENE_STR_EQ(a, b) (eqshrstr((a), (b)) || luaS_eqlngstr((a), (b)))
#define PALLENE_STR_CMP(a, b) (l_strcmp((a), (b)))

#define PALLENE_PUSH_STRING(L, s) \
  do { setsvalue((L), s2v((L)->top), (s)); api_incr_top(L); } while (0)

#define PALLENE_CHECK_TABLE(L, idx) \
  (luaL_checktype((L), (idx), LUA_TTABLE), (Table *)lua_topointer((L), (idx)))

static lua_Number luai_nummod_wrap(lua_Number a, lua_Number b) {
  lua_Number r = fmod(a, b);
  if (r != 0 && (r < 0) != (b < 0)) r += b;
  return r;
}
`
